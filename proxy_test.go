package main

import (
	"fmt"
	"strings"
	"testing"
)

// tagWire frames a tag with optional argument for test input.
func tagWire(code int, arg, body string) string {
	s := fmt.Sprintf("\x1b<%02d", code)
	if arg != "" {
		s += arg + "\x1b|"
	}
	return s + body + fmt.Sprintf("\x1b>%02d", code)
}

func TestDispatch_SuppressedCodes(t *testing.T) {
	for _, code := range []int{5, 6, 11, 40, 41, 42, 50, 51, 52, 53, 54, 60} {
		if _, out := translate(t, tagWire(code, "", "ignored body")); out != "" {
			t.Fatalf("tag %d: expected no output, got %q", code, out)
		}
	}
}

func TestDispatch_Message_NoArg(t *testing.T) {
	if _, out := translate(t, tagWire(10, "", "hello")); out != "hello" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_Message_LabeledArg(t *testing.T) {
	_, out := translate(t, tagWire(10, "chan_newbie", "hi all"))
	if out != "chan_newbie: hi all" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_Message_Prompt(t *testing.T) {
	// The prompt rule restores the go-ahead the parser strips.
	_, out := translate(t, tagWire(10, "spec_prompt", "hp 100> "))
	if out != "hp 100> \xff\xf9" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_Message_MapNoSupport(t *testing.T) {
	if _, out := translate(t, tagWire(10, "spec_map", "NoMapSupport")); out != "" {
		t.Fatalf("expected suppression, got %q", out)
	}
}

func TestDispatch_Message_MapOtherBody(t *testing.T) {
	_, out := translate(t, tagWire(10, "spec_map", "something"))
	if out != "spec_map: something" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_ForegroundColor(t *testing.T) {
	_, out := translate(t, tagWire(20, "ff0000", "HP"))
	want := fmt.Sprintf("\x1b[38;5;%dmHP\x1b[0m", rgbToXterm(255, 0, 0))
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestDispatch_BackgroundColor(t *testing.T) {
	_, out := translate(t, tagWire(21, "0000ff", "SP"))
	want := fmt.Sprintf("\x1b[48;5;%dmSP\x1b[0m", rgbToXterm(0, 0, 255))
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestDispatch_ColorWithoutArg(t *testing.T) {
	if _, out := translate(t, tagWire(20, "", "text")); out != "" {
		t.Fatalf("expected no output without a color argument, got %q", out)
	}
}

func TestDispatch_MalformedColorConsumesTag(t *testing.T) {
	_, out := translate(t, tagWire(20, "zzzzzz", "text")+"after")
	if out != "after" {
		t.Fatalf("expected bad color skipped and stream intact, got %q", out)
	}
}

func TestDispatch_StyleTagsPassBody(t *testing.T) {
	for _, code := range []int{22, 23, 24, 25, 31} {
		if _, out := translate(t, tagWire(code, "", "styled")); out != "styled" {
			t.Fatalf("tag %d: got %q", code, out)
		}
	}
}

func TestDispatch_ProtAndTargetLabels(t *testing.T) {
	_, out := translate(t, tagWire(64, "", "force_absorption"))
	if out != "[prots]force_absorption\n" {
		t.Fatalf("got %q", out)
	}
	_, out = translate(t, tagWire(70, "", "orc (hurt)"))
	if out != "[target]orc (hurt)\n" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_UnknownCode(t *testing.T) {
	st, out := translate(t, tagWire(77, "", "x"))
	if !strings.Contains(out, "[unknown tag 77]x") {
		t.Fatalf("got %q", out)
	}
	if st.stats.unknown != 1 {
		t.Fatalf("unknown count = %d", st.stats.unknown)
	}
}

func TestDispatch_SecondArgEndReplacesFirst(t *testing.T) {
	_, out := translate(t, "\x1b<10one\x1b|two\x1b|body\x1b>10")
	if out != "two: body" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_StateClearedBetweenTags(t *testing.T) {
	// The argument of one tag must not leak into the next.
	_, out := translate(t, tagWire(10, "label", "a")+tagWire(10, "", "b"))
	if out != "label: ab" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_BodyAccumulatesAcrossChunks(t *testing.T) {
	_, out := translate(t, "\x1b<10spec_prompt\x1b|hp ", "100", "> \x1b>10")
	if out != "hp 100> \xff\xf9" {
		t.Fatalf("got %q", out)
	}
}

func TestDispatch_TagCounting(t *testing.T) {
	st, _ := translate(t, tagWire(11, "", "")+tagWire(70, "", "x")+tagWire(77, "", "y"))
	if st.stats.tags != 3 || st.stats.unknown != 1 {
		t.Fatalf("tags=%d unknown=%d", st.stats.tags, st.stats.unknown)
	}
}
