package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/google/gopacket/tcpassembly"
)

// replayCapture reads a pcap/pcapng capture of a game session and runs the
// server side of the conversation through the translator, writing the result
// to w. serverPort selects which flow direction counts as server output; when
// empty every TCP payload is translated.
func replayCapture(path, serverPort string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var source *gopacket.PacketSource
	if ng, err := pcapgo.NewNgReader(f, pcapgo.NgReaderOptions{}); err == nil {
		source = gopacket.NewPacketSource(ng, ng.LinkType())
	} else {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return err
		}
		r, err := pcapgo.NewReader(f)
		if err != nil {
			return fmt.Errorf("open capture %s: %w", path, err)
		}
		source = gopacket.NewPacketSource(r, r.LinkType())
	}

	st := newSession()
	factory := &captureStreamFactory{
		parser:     newTagParser(st),
		sess:       st,
		serverPort: serverPort,
		out:        w,
	}
	pool := tcpassembly.NewStreamPool(factory)
	assembler := tcpassembly.NewAssembler(pool)

	for {
		pkt, err := source.NextPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		netLayer := pkt.NetworkLayer()
		if netLayer == nil {
			continue
		}
		tcp, ok := pkt.TransportLayer().(*layers.TCP)
		if !ok {
			continue
		}
		assembler.AssembleWithTimestamp(netLayer.NetworkFlow(), tcp,
			pkt.Metadata().CaptureInfo.Timestamp)
	}
	assembler.FlushAll()
	logInfo("%s", st.stats.summary())
	return nil
}

type captureStreamFactory struct {
	parser     *tagParser
	sess       *session
	serverPort string
	out        io.Writer
}

func (f *captureStreamFactory) New(netFlow, tcpFlow gopacket.Flow) tcpassembly.Stream {
	if f.serverPort != "" && tcpFlow.Src().String() != f.serverPort {
		return &discardStream{}
	}
	return &captureStream{f: f}
}

// captureStream feeds reassembled server bytes through the shared translator
// session and flushes its output as it goes.
type captureStream struct {
	f *captureStreamFactory
}

func (s *captureStream) Reassembled(rs []tcpassembly.Reassembly) {
	for _, r := range rs {
		if len(r.Bytes) == 0 {
			continue
		}
		s.f.sess.stats.rxBytes.Add(uint64(len(r.Bytes)))
		s.f.parser.feed(r.Bytes)
	}
	if out := s.f.sess.drain(); len(out) > 0 {
		if _, err := s.f.out.Write(out); err != nil {
			logError("replay write: %v", err)
		}
	}
}

func (s *captureStream) ReassemblyComplete() {}

// discardStream swallows the client->server direction of a capture.
type discardStream struct{}

func (*discardStream) Reassembled([]tcpassembly.Reassembly) {}
func (*discardStream) ReassemblyComplete()                  {}
