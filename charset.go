package main

import "golang.org/x/text/encoding/charmap"

// The game server speaks ISO-8859-1; modern terminals expect UTF-8. Both
// directions are optional and off by default so the proxy stays a pure
// byte-for-byte relay.

func decodeLatin1(b []byte) string {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func encodeLatin1(s string) []byte {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return b
}
