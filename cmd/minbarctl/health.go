package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
)

// HealthCommand creates the health command
func HealthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check typesense and redis connectivity",
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := loadDeps(c, true)
			if err != nil {
				return err
			}
			defer d.close()

			report := d.health().Check(ctx)
			renderHealth(os.Stdout, report)
			if report.Status != healthuc.Healthy {
				return fmt.Errorf("status %s", report.Status)
			}
			return nil
		},
	}
}
