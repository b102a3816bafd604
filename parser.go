package main

import "fmt"

const (
	escByte = 0x1b
	iacByte = 0xff
	gaByte  = 0xf9
)

// goAhead is the two-byte telnet prompt marker (IAC GA). The parser strips it
// from the stream; the prompt rule in the dispatcher re-appends it so the
// downstream line editor still sees pending prompts.
var goAhead = []byte{iacByte, gaByte}

// tagEvents receives parser events in input order, synchronously.
type tagEvents interface {
	// onText delivers bytes outside any tag, passed through unmodified.
	onText(b []byte)
	// onTagOpen begins a new tag. Firing while a previous tag still has
	// unflushed content is the implicit close-then-reopen transition.
	onTagOpen(code int)
	// onTagText delivers bytes belonging to the open tag, in arrival order.
	onTagText(b []byte)
	// onArgEnd marks the bytes accumulated so far as the tag's argument.
	onArgEnd()
	// onTagClose completes the open tag.
	onTagClose(code int)
}

type parserState int

const (
	stateText parserState = iota
	stateEsc
	stateOpen1 // saw ESC '<'
	stateOpen2 // saw ESC '<' and one digit
	stateClose1
	stateClose2
	stateIAC
)

// tagParser is the streaming lexer for the BC control-code framing: ESC '<' DD
// opens tag DD, ESC '|' ends its argument, ESC '>' DD closes it. Control
// sequences may arrive split across read chunks; incomplete prefixes are held
// between feeds and fall back to literal text if they turn out not to be
// framing after all.
type tagParser struct {
	sink  tagEvents
	state parserState
	inTag bool
	code  int // code of the open tag
	num   int // first digit of a code being read
}

func newTagParser(sink tagEvents) *tagParser {
	return &tagParser{sink: sink}
}

// partial reconstructs the raw bytes of the held control-sequence prefix, for
// literal fallback.
func (p *tagParser) partial() []byte {
	switch p.state {
	case stateEsc:
		return []byte{escByte}
	case stateOpen1:
		return []byte{escByte, '<'}
	case stateOpen2:
		return []byte{escByte, '<', '0' + byte(p.num)}
	case stateClose1:
		return []byte{escByte, '>'}
	case stateClose2:
		return []byte{escByte, '>', '0' + byte(p.num)}
	case stateIAC:
		return []byte{iacByte}
	}
	return nil
}

func (p *tagParser) emitText(b []byte) {
	if len(b) == 0 {
		return
	}
	if p.inTag {
		p.sink.onTagText(b)
	} else {
		p.sink.onText(b)
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// feed pushes one chunk of raw server bytes through the lexer, invoking sink
// events synchronously.
func (p *tagParser) feed(data []byte) {
	lit := -1 // start of the current literal run, -1 when none
	flush := func(end int) {
		if lit >= 0 {
			p.emitText(data[lit:end])
			lit = -1
		}
	}
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch p.state {
		case stateText:
			switch c {
			case escByte:
				flush(i)
				p.state = stateEsc
			case iacByte:
				flush(i)
				p.state = stateIAC
			default:
				if lit < 0 {
					lit = i
				}
			}
		case stateEsc:
			switch c {
			case '<':
				p.state = stateOpen1
			case '>':
				p.state = stateClose1
			case '|':
				p.state = stateText
				if p.inTag {
					p.sink.onArgEnd()
				} else {
					// Argument separator outside a tag is not framing.
					p.emitText([]byte{escByte, '|'})
				}
			default:
				p.state = stateText
				p.emitText([]byte{escByte})
				i--
			}
		case stateOpen1:
			if isDigit(c) {
				p.num = int(c - '0')
				p.state = stateOpen2
			} else {
				p.fallback()
				i--
			}
		case stateOpen2:
			if isDigit(c) {
				code := p.num*10 + int(c-'0')
				p.state = stateText
				p.sink.onTagOpen(code)
				p.inTag = true
				p.code = code
			} else {
				p.fallback()
				i--
			}
		case stateClose1:
			if isDigit(c) {
				p.num = int(c - '0')
				p.state = stateClose2
			} else {
				p.fallback()
				i--
			}
		case stateClose2:
			if isDigit(c) {
				code := p.num*10 + int(c-'0')
				if !p.inTag {
					// No valid input sequence closes a tag that is not
					// open; the lexer itself is broken if we get here.
					panic(fmt.Sprintf("tag close %d without open tag", code))
				}
				if code != p.code {
					logDebug("tag close %d while tag %d open", code, p.code)
				}
				p.state = stateText
				p.inTag = false
				p.sink.onTagClose(p.code)
			} else {
				p.fallback()
				i--
			}
		case stateIAC:
			p.state = stateText
			if c != gaByte {
				p.emitText([]byte{iacByte})
				i--
			}
		}
	}
	flush(len(data))
}

// fallback abandons the held control-sequence prefix, emitting it as literal
// text; the caller reprocesses the current byte.
func (p *tagParser) fallback() {
	p.emitText(p.partial())
	p.state = stateText
}
