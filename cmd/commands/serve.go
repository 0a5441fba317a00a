package commands

import (
	"context"

	"ux_auditor/internal/http"

	"github.com/urfave/cli/v3"
)

// NewServeCommand returns the serve subcommand.
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the audit api, metrics and (in debug mode) pprof servers",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, logInstance, auditor, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}

	logInstance.Info(`starting ux auditor`)
	if err := http.Init(ctx, logInstance, cfg, auditor); err != nil {
		logInstance.WithError(err).Error(`server shutdown failed`)
		return err
	}
	logInstance.Info(`ux auditor stopped`)
	return nil
}
