package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/casekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/casekeeper/internal/client/cli"
	"github.com/dmitrijs2005/casekeeper/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, config.LoadConfig())
	if err != nil {
		return err
	}

	var closeErr error
	var once sync.Once
	shutdown := func() {
		once.Do(func() { closeErr = app.Close(context.WithoutCancel(ctx)) })
	}

	// The REPL is blocked reading stdin when a signal arrives, so flush and
	// exit from here instead of waiting for the next line.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdown()
		if closeErr != nil {
			log.Print(closeErr)
		}
		os.Exit(130)
	}()

	app.Run(ctx)
	close(done)
	shutdown()
	return closeErr
}
