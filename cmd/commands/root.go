package commands

import (
	"context"

	"ux_auditor/internal/application"
	"ux_auditor/internal/application/config"
	"ux_auditor/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "ux-auditor",
		Usage: "AI UX and accessibility auditor for web pages and html snippets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the env config file",
				Value:   `config.env`,
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewAuditCommand(),
		},
		DefaultCommand: "serve",
	}
}

// bootstrap loads the config file named by --config and builds the logger
// and auditor every subcommand needs.
func bootstrap(ctx context.Context, cmd *cli.Command) (*config.AppConfig, *log.Logger, *service.Auditor, error) {
	cfg, err := config.LoadAppConfig(cmd.String("config"))
	if err != nil {
		return nil, nil, nil, err
	}

	logInstance, err := application.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	auditor, err := application.NewAuditor(ctx, logInstance, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logInstance, auditor, nil
}
