package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/minbar-platform/minbar-search/internal/domain/collection"
	searchuc "github.com/minbar-platform/minbar-search/internal/usecase/search"
)

func domainFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "domain",
		Usage: "Restrict results to one site domain id",
	}
}

func scholarFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "scholar",
		Usage: "Filter by scholar name. Can be used multiple times",
	}
}

func typeFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:  "type",
		Usage: "Filter by content type (" + strings.Join(contentTypes(), ", ") + "). Can be used multiple times",
	}
}

func pagingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "Page number",
			Value: 1,
		},
		perPageFlag(),
	}
}

func perPageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "per-page",
		Usage: "Results per page (defaults to the configured page size)",
	}
}

func facetsFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "no-facets",
		Usage: "Do not print facet counts",
	}
}

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Rank a query across all selected collections",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:     "query",
				Aliases:  []string{"q"},
				Usage:    "Search query",
				Required: true,
			},
			domainFlag(),
			typeFlag(),
			scholarFlag(),
			facetsFlag(),
		}, pagingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := loadDeps(c, false)
			if err != nil {
				return err
			}
			defer d.close()

			svc := searchuc.NewMixedService(d.docs, d.logger).WithLimits(d.limits())
			res := svc.Search(ctx, paramsFrom(c))
			return renderResult(os.Stdout, "Search: "+c.String("query"), res, !c.Bool("no-facets"))
		},
	}
}

// BrowseCommand creates the browse command
func BrowseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Show the newest documents of every selected collection",
		Flags: []cli.Flag{
			domainFlag(),
			typeFlag(),
			scholarFlag(),
			facetsFlag(),
			perPageFlag(),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := loadDeps(c, false)
			if err != nil {
				return err
			}
			defer d.close()

			svc := searchuc.NewBrowseService(d.docs, d.logger).WithLimits(d.limits())
			res := svc.Browse(ctx, paramsFrom(c))
			return renderResult(os.Stdout, "Browse", res, !c.Bool("no-facets"))
		},
	}
}

// CollectionCommand creates the collection command
func CollectionCommand() *cli.Command {
	return &cli.Command{
		Name:      "collection",
		Usage:     "Search a single collection",
		ArgsUsage: "<name>",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Search query (empty lists the newest documents)",
			},
			domainFlag(),
			scholarFlag(),
			facetsFlag(),
		}, pagingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return errors.New("collection name is required")
			}
			k, err := collection.Parse(name)
			if err != nil {
				return fmt.Errorf("%w (known: %s)", err, strings.Join(contentTypes(), ", "))
			}

			d, err := loadDeps(c, false)
			if err != nil {
				return err
			}
			defer d.close()

			svc := searchuc.NewCollectionService(d.docs, d.logger).WithLimits(d.limits())
			res, err := svc.Search(ctx, k, paramsFrom(c))
			if err != nil {
				return fmt.Errorf("searching %s: %w", k.PluralKey(), err)
			}
			return renderResult(os.Stdout, k.Name(), res, !c.Bool("no-facets"))
		},
	}
}

// paramsFrom reads the search flags a command defines.
func paramsFrom(c *cli.Command) searchuc.Params {
	p := searchuc.Params{
		Query:        c.String("query"),
		DomainID:     c.String("domain"),
		ContentTypes: c.StringSlice("type"),
		Scholars:     c.StringSlice("scholar"),
		Page:         c.Int("page"),
	}
	if c.IsSet("per-page") {
		n := c.Int("per-page")
		p.PerPage = &n
	}
	return p
}

func contentTypes() []string {
	out := make([]string, 0, collection.Count())
	for _, k := range collection.All() {
		out = append(out, k.ContentType())
	}
	return out
}
