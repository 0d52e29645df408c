package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lixenwraith/rotlog"
	"github.com/lixenwraith/rotlog/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
	log *compat.GnetAdapter
}

func (es *echoServer) OnBoot(eng gnet.Engine) gnet.Action {
	es.log.Infof("echo server ready")
	return gnet.None
}

func (es *echoServer) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	es.log.Debugf("connection opened from %s", c.RemoteAddr())
	return nil, gnet.None
}

func (es *echoServer) OnClose(c gnet.Conn, err error) gnet.Action {
	if err != nil {
		es.log.Warnf("connection from %s closed: %v", c.RemoteAddr(), err)
	}
	return gnet.None
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	addr := flag.String("addr", "tcp://127.0.0.1:9000", "listen address")
	dir := flag.String("dir", "", "log directory, empty resolves <exe dir>/gnet-echo-logs")
	flag.Parse()

	cfg := rotlog.DefaultConfig()
	cfg.Name = "gnet-echo"
	cfg.Directory = *dir
	builder := compat.NewBuilder().WithConfig(cfg)

	gnetAdapter, err := builder.BuildGnet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	m, _ := builder.GetManager()
	defer m.Shutdown()

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{log: gnetAdapter},
		*addr,
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		m.Errorf("gnet stopped: %v", err)
	}
}
