package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/casekeeper/internal/server"
	"github.com/dmitrijs2005/casekeeper/internal/server/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Run(ctx)
}
