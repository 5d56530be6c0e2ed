package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dloss/adoview/internal/cmd"
	"github.com/dloss/adoview/internal/iostreams"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func registerSignalHandler() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func main() {
	ctx, stop := registerSignalHandler()
	code := cmd.Execute(ctx, iostreams.GetOSIOStreams(), cmd.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Args[1:])
	stop()
	os.Exit(code)
}
