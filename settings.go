package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

type Settings struct {
	Listen          string `json:"listen"`
	Server          string `json:"server"`
	MaxSessions     int    `json:"maxSessions"`
	TranscodeLatin1 bool   `json:"transcodeLatin1"`
	DiscordPresence bool   `json:"discordPresence"`
	DiscordAppID    string `json:"discordAppId"`
	ReadBufferSize  int    `json:"readBufferSize"`
}

var settings = Settings{
	Listen:         "127.0.0.1:2000",
	Server:         "batmud.bat.org:2023",
	MaxSessions:    8,
	ReadBufferSize: 8192,
}

// loadSettings reads settings.json from baseDir, leaving defaults in place
// when the file is absent or unreadable.
func loadSettings() bool {
	path := filepath.Join(baseDir, "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		logError("parse %s: %v", path, err)
		return false
	}
	if s.Listen != "" {
		settings.Listen = s.Listen
	}
	if s.Server != "" {
		settings.Server = s.Server
	}
	if s.MaxSessions > 0 {
		settings.MaxSessions = s.MaxSessions
	}
	if s.ReadBufferSize > 0 {
		settings.ReadBufferSize = s.ReadBufferSize
	}
	settings.TranscodeLatin1 = s.TranscodeLatin1
	settings.DiscordPresence = s.DiscordPresence
	if s.DiscordAppID != "" {
		settings.DiscordAppID = s.DiscordAppID
	}
	return true
}
