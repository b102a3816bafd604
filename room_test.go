package main

import "testing"

func mapperWire(payload string) string {
	return tagWire(99, "", payload)
}

func TestParseRoom_Fields(t *testing.T) {
	r, err := parseRoom("BAT_MAPPER;;dortlewall;;$apr1$dz;;north;;0;;Path;;A path.;;east,north")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if r.Area != "dortlewall" || r.ID != "$apr1$dz" || r.Direction != "north" {
		t.Fatalf("got %#v", r)
	}
}

func TestParseRoom_Malformed(t *testing.T) {
	for _, s := range []string{
		"BAT_MAPPER;;onlyarea",
		"NOT_MAPPER;;a;;b;;c",
		"BAT_MAPPER;;;;id1;;north",
		"BAT_MAPPER;;area;;;;north",
	} {
		if r, err := parseRoom(s); err == nil {
			t.Fatalf("%q: expected parse failure, got %#v", s, r)
		}
	}
}

func TestRoomTracker_EnterThenMove(t *testing.T) {
	st := newSession()
	p := newTagParser(st)
	p.feed([]byte(mapperWire("BAT_MAPPER;;dortlewall;;room1;;north;;0;;;;;;")))
	if got := string(st.drain()); got != "Entered area dortlewall with direction north\n" {
		t.Fatalf("got %q", got)
	}
	p.feed([]byte(mapperWire("BAT_MAPPER;;dortlewall;;room2;;east;;0;;;;;;")))
	if got := string(st.drain()); got != "Moved (room1) --east-> (room2)\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRoomTracker_AreaChange(t *testing.T) {
	st := newSession()
	p := newTagParser(st)
	p.feed([]byte(mapperWire("BAT_MAPPER;;forest;;f1;;south;;0;;;;;;")))
	st.drain()
	p.feed([]byte(mapperWire("BAT_MAPPER;;swamp;;s1;;west;;0;;;;;;")))
	if got := string(st.drain()); got != "Entered area swamp with direction west\n" {
		t.Fatalf("got %q", got)
	}
	if st.room == nil || st.room.Area != "swamp" || st.room.ID != "s1" {
		t.Fatalf("tracked room %#v", st.room)
	}
}

func TestRoomTracker_ExitToMap(t *testing.T) {
	st := newSession()
	p := newTagParser(st)
	p.feed([]byte(mapperWire("BAT_MAPPER;;forest;;f1;;south;;0;;;;;;")))
	st.drain()
	p.feed([]byte(mapperWire("BAT_MAPPER;;REALM_MAP")))
	if got := string(st.drain()); got != "Exited to map from forest.\n" {
		t.Fatalf("got %q", got)
	}
	if st.room != nil {
		t.Fatalf("expected no tracked room, got %#v", st.room)
	}
}

func TestRoomTracker_ExitToMapWithoutRoom(t *testing.T) {
	_, out := translate(t, mapperWire("BAT_MAPPER;;REALM_MAP"))
	if out != "Exited to map from (unknown).\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRoomTracker_MalformedPayloadKeepsState(t *testing.T) {
	st := newSession()
	p := newTagParser(st)
	p.feed([]byte(mapperWire("BAT_MAPPER;;forest;;f1;;south;;0;;;;;;")))
	st.drain()
	p.feed([]byte(mapperWire("BAT_MAPPER;;;;broken;;north")))
	if got := string(st.drain()); got != "" {
		t.Fatalf("expected malformed payload ignored, got %q", got)
	}
	// Same-area move still narrates against the surviving room.
	p.feed([]byte(mapperWire("BAT_MAPPER;;forest;;f2;;east;;0;;;;;;")))
	if got := string(st.drain()); got != "Moved (f1) --east-> (f2)\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRoomTracker_NonMapperPayloadIgnored(t *testing.T) {
	st, out := translate(t, mapperWire("some other channel data"))
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
	if st.room != nil {
		t.Fatalf("expected no tracked room")
	}
}
