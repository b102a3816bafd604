package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/remeh/sizedwaitgroup"
)

// baseDir is where settings.json and the logs directory live.
var baseDir string

func main() {
	listen := flag.String("listen", "", "address to accept client connections on")
	server := flag.String("server", "", "game server address")
	doDebug := flag.Bool("debug", false, "verbose/debug logging")
	replay := flag.String("replay", "", "translate a captured session from a .pcap/.pcapng file and exit")
	replayPort := flag.String("replay-port", "2023", "server port inside the capture (empty translates every flow)")
	flag.Parse()

	baseDir = os.Getenv("PWD")
	if baseDir == "" {
		var err error
		if baseDir, err = os.Getwd(); err != nil {
			log.Fatalf("get working directory: %v", err)
		}
	}

	setupLogging(*doDebug)
	loadSettings()
	if *listen != "" {
		settings.Listen = *listen
	}
	if *server != "" {
		settings.Server = *server
	}

	defer func() {
		if r := recover(); r != nil {
			logError("panic: %v\n%s", r, debug.Stack())
			os.Exit(2)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *replay != "" {
		if err := replayCapture(*replay, *replayPort, os.Stdout); err != nil {
			logError("replay %s: %v", *replay, err)
			os.Exit(1)
		}
		return
	}

	if settings.DiscordPresence {
		initDiscordRPC(ctx)
	}

	ln, err := net.Listen("tcp", settings.Listen)
	if err != nil {
		logError("listen %s: %v", settings.Listen, err)
		os.Exit(1)
	}
	go func() {
		<-ctx.Done()
		ln.Close()
	}()
	logInfo("listening on %s, relaying to %s", settings.Listen, settings.Server)

	swg := sizedwaitgroup.New(settings.MaxSessions)
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			logError("accept: %v", err)
			continue
		}
		swg.Add()
		go func(c net.Conn) {
			defer swg.Done()
			serveConnection(ctx, c)
		}(conn)
	}
	swg.Wait()
	logInfo("shut down")
}
