package main

import (
	"context"
	"os/signal"
	"syscall"

	"fenrir/internal/common"
	"fenrir/internal/net"
	"fenrir/internal/wireengine"
)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
	)
	defer stop()

	// Setup the TCP server and the matching engine.
	eng := wireengine.New(common.Equities)
	srv := net.New("0.0.0.0", 9001, eng)
	eng.SetReporter(srv)

	go srv.Run(ctx)
	// Block on running the server.
	<-ctx.Done()
}
