package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"time"

	"golang.org/x/time/rate"
)

// dialLimiter paces connection attempts to the game server so a dead server
// does not turn the accept loop into a tight reconnect spin.
var dialLimiter = rate.NewLimiter(rate.Every(2*time.Second), 1)

const dialAttempts = 3

// dialServer connects to the game server, retrying a few paced times.
func dialServer(ctx context.Context, addr string) (net.Conn, error) {
	var lastErr error
	for attempt := 0; attempt < dialAttempts; attempt++ {
		if err := dialLimiter.Wait(ctx); err != nil {
			return nil, err
		}
		d := net.Dialer{Timeout: 10 * time.Second}
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			return conn, nil
		}
		lastErr = err
		logError("dial %s: %v", addr, err)
	}
	return nil, lastErr
}

// writeAll writes the entirety of data to conn, returning an error if the
// write fails or is short.
func writeAll(conn net.Conn, data []byte) error {
	for len(data) > 0 {
		n, err := conn.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}

// serveConnection runs one proxied session: client input is relayed to the
// server untouched (transcoded when enabled), server output is pushed through
// the tag translator and the result flushed to the client after every chunk.
func serveConnection(ctx context.Context, client net.Conn) {
	defer client.Close()
	logInfo("client connected from %s", client.RemoteAddr())

	server, err := dialServer(ctx, settings.Server)
	if err != nil {
		logError("session aborted: %v", err)
		return
	}
	defer server.Close()

	st := newSession()
	parser := newTagParser(st)

	go relayClientInput(client, server, st)

	buf := make([]byte, settings.ReadBufferSize)
	for {
		n, err := server.Read(buf)
		if n > 0 {
			st.stats.rxBytes.Add(uint64(n))
			logDebugChunk("recv", buf[:n])
			parser.feed(buf[:n])
			if out := st.drain(); len(out) > 0 {
				if werr := writeAll(client, out); werr != nil {
					logError("write client: %v", werr)
					break
				}
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logError("read server: %v", err)
			}
			break
		}
	}
	logInfo("%s", st.stats.summary())
}

// relayClientInput copies the client's keystrokes to the server. With
// transcoding on, each line is re-encoded to the server's charset; lines are
// the natural unit since MUD clients send line-buffered commands.
func relayClientInput(client, server net.Conn, st *session) {
	defer server.Close()
	if !st.transcode {
		n, err := io.Copy(server, client)
		st.stats.txBytes.Add(uint64(n))
		if err != nil && !errors.Is(err, net.ErrClosed) {
			logDebug("client relay: %v", err)
		}
		return
	}
	r := bufio.NewReader(client)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			enc := encodeLatin1(string(line))
			st.stats.txBytes.Add(uint64(len(enc)))
			if werr := writeAll(server, enc); werr != nil {
				logDebug("client relay: %v", werr)
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				logDebug("client relay: %v", err)
			}
			return
		}
	}
}
