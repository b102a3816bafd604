package main

import (
	"fmt"
	"strings"
)

const (
	mapperPrefix   = "BAT_MAPPER;;"
	mapperRealmMap = "BAT_MAPPER;;REALM_MAP"
)

// Room is the tracked unit of in-game location. Rooms are identified by id
// within an area and reached via a direction from the previous room.
type Room struct {
	ID        string
	Area      string
	Direction string
}

// parseRoom parses a BAT_MAPPER room descriptor payload. Fields are separated
// by ";;": marker, area, id, direction, then extra fields (indoor flag,
// descriptions, exits) that narration ignores.
func parseRoom(s string) (*Room, error) {
	parts := strings.Split(s, ";;")
	if len(parts) < 4 || parts[0] != "BAT_MAPPER" {
		return nil, fmt.Errorf("malformed room descriptor %q", s)
	}
	r := &Room{Area: parts[1], ID: parts[2], Direction: parts[3]}
	if r.Area == "" || r.ID == "" {
		return nil, fmt.Errorf("room descriptor missing area or id in %q", s)
	}
	return r, nil
}

// roomEvent feeds one tag-99 body to the room tracker and returns the
// narration to emit, if any. Payloads without the mapper prefix are not map
// events and are ignored.
func (st *session) roomEvent(body string) string {
	if !strings.HasPrefix(body, mapperPrefix) {
		return ""
	}
	if body == mapperRealmMap {
		area := "(unknown)"
		if st.room != nil {
			area = st.room.Area
		}
		st.room = nil
		updatePresenceArea("")
		return fmt.Sprintf("Exited to map from %s.\n", area)
	}
	next, err := parseRoom(body)
	if err != nil {
		logError("room tracker: %v", err)
		return ""
	}
	prev := st.room
	st.room = next
	updatePresenceArea(next.Area)
	if prev == nil || prev.Area != next.Area {
		return fmt.Sprintf("Entered area %s with direction %s\n", next.Area, next.Direction)
	}
	return fmt.Sprintf("Moved (%s) --%s-> (%s)\n", prev.ID, next.Direction, next.ID)
}
