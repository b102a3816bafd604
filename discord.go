package main

import (
	"context"
	"sync"
	"time"

	client "github.com/hugolgst/rich-go/client"
)

var (
	presenceMu      sync.Mutex
	presenceEnabled bool
	presenceArea    string
)

// initDiscordRPC connects to a local Discord client when presence is enabled
// in settings. Failures are logged and presence stays off.
func initDiscordRPC(ctx context.Context) {
	if settings.DiscordAppID == "" {
		logError("discord presence enabled but no app id configured")
		return
	}
	if err := client.Login(settings.DiscordAppID); err != nil {
		logError("discord rpc login: %v", err)
		return
	}
	presenceMu.Lock()
	presenceEnabled = true
	presenceMu.Unlock()
	setPresence("Connected")
	go func() {
		<-ctx.Done()
		presenceMu.Lock()
		presenceEnabled = false
		presenceMu.Unlock()
		client.Logout()
	}()
}

// updatePresenceArea is called by the room tracker whenever the tracked area
// changes. An empty area means the player left the mapped world.
func updatePresenceArea(area string) {
	presenceMu.Lock()
	if !presenceEnabled || presenceArea == area {
		presenceMu.Unlock()
		return
	}
	presenceArea = area
	presenceMu.Unlock()
	if area == "" {
		setPresence("On the realm map")
		return
	}
	setPresence("Exploring " + area)
}

func setPresence(state string) {
	now := time.Now()
	if err := client.SetActivity(client.Activity{
		State:   state,
		Details: "In game",
		Timestamps: &client.Timestamps{
			Start: &now,
		},
	}); err != nil {
		logError("discord rpc activity: %v", err)
	}
}
