package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ux_auditor/cmd/commands"

	log "github.com/sirupsen/logrus"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := commands.NewRootCommand()
	if err := cmd.Run(ctx, os.Args); err != nil {
		log.WithError(err).Error(`ux auditor failed`)
		cancel()
		os.Exit(1)
	}
}
