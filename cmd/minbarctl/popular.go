package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
)

// PopularCommand creates the popular command
func PopularCommand() *cli.Command {
	return &cli.Command{
		Name:  "popular",
		Usage: "Show the most searched queries of a day",
		Flags: []cli.Flag{
			domainFlag(),
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of queries (defaults to stats.top_limit)",
			},
			&cli.StringFlag{
				Name:  "day",
				Usage: "Day to report, YYYY-MM-DD (defaults to today, UTC)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := loadDeps(c, true)
			if err != nil {
				return err
			}
			defer d.close()

			if d.stats == nil {
				return errors.New("query statistics are disabled: no redis.addrs configured")
			}

			day := time.Now().UTC()
			if s := c.String("day"); s != "" {
				if day, err = time.Parse(time.DateOnly, s); err != nil {
					return fmt.Errorf("parsing --day: %w", err)
				}
			}
			limit := d.cfg.Stats.TopLimit
			if c.IsSet("limit") {
				limit = c.Int("limit")
			}

			domainID := c.String("domain")
			entries, err := d.stats.Top(ctx, domainID, day, limit)
			if err != nil {
				return fmt.Errorf("reading popular queries: %w", err)
			}
			total, err := d.stats.Total(ctx, domainID, day)
			if err != nil {
				return fmt.Errorf("reading query total: %w", err)
			}
			renderPopular(os.Stdout, day, total, entries)
			return nil
		},
	}
}
