package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// sessionStats counts relayed traffic for one connection. rx/tx are touched
// from both relay goroutines and are atomic; tag counters belong to the
// single translator goroutine.
type sessionStats struct {
	started time.Time
	rxBytes atomic.Uint64 // server -> client, before translation
	txBytes atomic.Uint64 // client -> server
	tags    int
	unknown int
}

// summary renders the teardown line logged when a session ends.
func (s *sessionStats) summary() string {
	d := durafmt.Parse(time.Since(s.started).Round(time.Second)).LimitFirstN(2).Format(shortUnits)
	return fmt.Sprintf("session closed after %s: rx %s, tx %s, %d tags (%d unknown)",
		d, humanize.Bytes(s.rxBytes.Load()), humanize.Bytes(s.txBytes.Load()),
		s.tags, s.unknown)
}
