package main

import (
	"bytes"
	"fmt"
	"time"
)

// Reserved tag-10 markers and the map-capability refusal token.
const (
	promptMarker = "spec_prompt"
	mapMarker    = "spec_map"
	noMapSupport = "NoMapSupport"
)

const sgrReset = "\x1b[0m"

// session is the translation state for one client connection. It is owned by
// exactly one relay goroutine and never shared.
type session struct {
	out  bytes.Buffer // finalized output, drained by the relay loop
	tmp  bytes.Buffer // scratch for the tag currently open
	arg  *string      // pending argument of the open tag
	room *Room

	openCode  int
	transcode bool // ISO-8859-1 -> UTF-8 on server prose
	stats     sessionStats
}

func newSession() *session {
	st := &session{transcode: settings.TranscodeLatin1}
	st.stats.started = time.Now()
	return st
}

// writeText appends server prose to the output, transcoding when enabled.
// Control bytes we generate ourselves never go through here.
func (st *session) writeText(s string) {
	if st.transcode {
		s = decodeLatin1([]byte(s))
	}
	st.out.WriteString(s)
}

func (st *session) onText(b []byte) {
	st.writeText(string(b))
}

func (st *session) onTagOpen(code int) {
	// The grammar cannot express nesting: an open while the previous tag
	// still has unflushed content closes that tag first, possibly losing
	// structure the server intended.
	if st.tmp.Len() > 0 || st.arg != nil {
		st.onTagClose(st.openCode)
	}
	st.openCode = code
}

func (st *session) onTagText(b []byte) {
	st.tmp.Write(b)
}

func (st *session) onArgEnd() {
	// A second arg end before the close replaces the snapshot.
	s := st.tmp.String()
	st.arg = &s
	st.tmp.Reset()
}

// onTagClose applies the rule table for the closing tag and appends its
// output. The pending argument and scratch buffer are released on every path
// out, recognized code or not.
func (st *session) onTagClose(code int) {
	body := st.tmp.String()
	defer func() {
		st.arg = nil
		st.tmp.Reset()
	}()
	st.stats.tags++

	switch code {
	case 5, 6: // connection success / failure
	case 10: // message with type
		switch {
		case st.arg == nil:
			st.writeText(body)
		case *st.arg == promptMarker:
			st.writeText(body)
			st.out.Write(goAhead)
		case *st.arg == mapMarker && body == noMapSupport:
		default:
			st.writeText(*st.arg + ": " + body)
		}
	case 11: // clear screen
	case 20, 21: // set fg / bg color
		if st.arg == nil {
			break
		}
		r, g, b, err := parseHexColor(*st.arg)
		if err != nil {
			logError("tag %d: %v", code, err)
			break
		}
		sgr := 3
		if code == 21 {
			sgr = 4
		}
		fmt.Fprintf(&st.out, "\x1b[%d8;5;%dm", sgr, rgbToXterm(r, g, b))
		st.writeText(body)
		st.out.WriteString(sgrReset)
	case 22, 23, 24, 25, 31: // bold, italic, underlined, blink, in-game link
		st.writeText(body)
	case 40, 41, 42, 50, 51, 52, 53, 54, 60: // skill/spell and status telemetry
	case 64: // prot status
		st.out.WriteString("[prots]")
		st.writeText(body)
		st.out.WriteByte('\n')
	case 70: // target health
		st.out.WriteString("[target]")
		st.writeText(body)
		st.out.WriteByte('\n')
	case 99: // mapper payload
		st.out.WriteString(st.roomEvent(body))
	default:
		st.stats.unknown++
		fmt.Fprintf(&st.out, "[unknown tag %d]%s\n", code, body)
	}
}

// drain returns the finalized output accumulated so far and resets the
// buffer. The returned slice is only valid until the next feed.
func (st *session) drain() []byte {
	b := st.out.Bytes()
	out := append([]byte(nil), b...)
	st.out.Reset()
	return out
}
