package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"ux_auditor/internal/domain/models"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/worker_pool"
	"ux_auditor/internal/service"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// NewAuditCommand returns the audit subcommand.
func NewAuditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Audit one or more urls or an html file and print the results as json",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "url",
				Aliases: []string{"u"},
				Usage:   "Page to audit (repeatable)",
			},
			&cli.StringFlag{
				Name:  "html-file",
				Usage: "File holding an html snippet to audit",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Audits run in parallel",
				Value: 2,
			},
		},
		Action: runAudit,
	}
}

type auditTarget struct {
	Name    string
	Request *models.AuditRequest
}

type auditReport struct {
	Target  string               `json:"target"`
	Outcome *models.AuditOutcome `json:"outcome,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func runAudit(ctx context.Context, cmd *cli.Command) error {
	targets, err := buildTargets(cmd.StringSlice("url"), cmd.String("html-file"))
	if err != nil {
		return err
	}

	_, logInstance, auditor, err := bootstrap(ctx, cmd)
	if err != nil {
		return err
	}

	reports := auditTargets(ctx, auditor, targets, cmd.Int("concurrency"), logInstance)
	if err := writeReports(cmd.Root().Writer, reports); err != nil {
		return err
	}

	for _, report := range reports {
		if report.Error != "" {
			return fmt.Errorf("%s: audit failed: %s", report.Target, report.Error)
		}
	}
	return nil
}

func buildTargets(urls []string, htmlFile string) ([]auditTarget, error) {
	var targets []auditTarget
	for _, u := range urls {
		targets = append(targets, auditTarget{
			Name:    u,
			Request: &models.AuditRequest{Mode: models.ModeURL, URL: &u},
		})
	}

	if htmlFile != "" {
		content, err := os.ReadFile(htmlFile)
		if err != nil {
			return nil, errors.Wrap(err, `failed to read html file`)
		}
		snippet := string(content)
		targets = append(targets, auditTarget{
			Name:    htmlFile,
			Request: &models.AuditRequest{Mode: models.ModeHTML, HTML: &snippet},
		})
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("nothing to audit: pass --url or --html-file")
	}
	return targets, nil
}

// auditTargets runs every target through the auditor with at most
// concurrency audits in flight. Reports keep the order of targets.
func auditTargets(ctx context.Context, auditor service.UXAuditor, targets []auditTarget, concurrency int, logger *log.Logger) []auditReport {
	pool := worker_pool.NewWorkerPool(ctx, concurrency, false, logger)
	for _, target := range targets {
		req := target.Request
		pool.Submit(target.Name, func(ctx context.Context) (any, error) {
			return auditor.Audit(ctx, req)
		})
	}

	results := pool.Wait()
	reports := make([]auditReport, 0, len(results))
	for _, res := range results {
		report := auditReport{Target: res.ID}
		if res.Err != nil {
			report.Error = errors.Message(res.Err)
		} else if outcome, ok := res.Result.(*models.AuditOutcome); ok {
			report.Outcome = outcome
		}
		reports = append(reports, report)
	}
	return reports
}

func writeReports(w io.Writer, reports []auditReport) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	for _, report := range reports {
		if err := enc.Encode(report); err != nil {
			return errors.Wrap(err, `failed to write report`)
		}
	}
	return nil
}
