package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/minbar-platform/minbar-search/internal/domain/search/hit"
	"github.com/minbar-platform/minbar-search/internal/domain/search/result"
	"github.com/minbar-platform/minbar-search/internal/repository/querystats"
	healthuc "github.com/minbar-platform/minbar-search/internal/usecase/health"
)

const maxFacetRows = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			Margin(1, 0, 0, 0)

	hitTitleStyle = lipgloss.NewStyle().Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("32"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// renderResult prints every group of r, then its facets when showFacets is set.
func renderResult(w io.Writer, title string, r result.Result, showFacets bool) error {
	fmt.Fprintln(w, titleStyle.Render(title))

	if r.IsEmpty() {
		fmt.Fprintln(w, noDataStyle.Render("No results found"))
		return nil
	}

	for _, key := range r.Keys() {
		hits := r.Hits(key)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s (%d)", key, len(hits))))
		if len(hits) == 0 {
			fmt.Fprintln(w, noDataStyle.Render("  none"))
			continue
		}
		for i, h := range hits {
			fmt.Fprintf(w, "%2d. %s\n", i+1, hitTitleStyle.Render(h.Title()))
			if meta := hitMeta(h); meta != "" {
				fmt.Fprintln(w, "    "+metaStyle.Render(meta))
			}
		}
	}

	if showFacets {
		renderFacets(w, r)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf(
		"Total: %d found, page %d of %d (%d per page)",
		r.TotalFound(), r.Page(), r.TotalPages(), r.PerPage(),
	)))
	return nil
}

func renderFacets(w io.Writer, r result.Result) {
	facets := r.Facets()
	fields := make([]string, 0, len(facets))
	for f := range facets {
		fields = append(fields, f)
	}
	slices.Sort(fields)

	for _, field := range fields {
		counts := facets[field]
		if len(counts) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render("facet "+field))
		for i, c := range counts {
			if i == maxFacetRows {
				fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("  ... %d more", len(counts)-maxFacetRows)))
				break
			}
			fmt.Fprintf(w, "  %-32s %6d\n", c.Value, c.Count)
		}
	}
}

// hitMeta joins the non-empty descriptive fields of h.
func hitMeta(h hit.Hit) string {
	var parts []string
	if h.ContentType() != "" {
		parts = append(parts, h.ContentType())
	}
	if s := h.ScholarName(); s != "" {
		parts = append(parts, s)
	}
	if m := h.MediaType(); m != "" {
		parts = append(parts, m)
	}
	if d := h.Duration(); d > 0 {
		parts = append(parts, (time.Duration(d) * time.Second).String())
	}
	if rt := h.ReadTime(); rt > 0 {
		parts = append(parts, fmt.Sprintf("%d min read", rt))
	}
	if u := h.URL(); u != "" {
		parts = append(parts, u)
	}
	return strings.Join(parts, " · ")
}

func renderPopular(w io.Writer, day time.Time, total int64, entries []querystats.Entry) {
	fmt.Fprintln(w, titleStyle.Render("Popular queries "+day.Format(time.DateOnly)))
	if len(entries) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No queries recorded"))
		return
	}
	for i, e := range entries {
		fmt.Fprintf(w, "%2d. %-40s %6d\n", i+1, e.Query, e.Count)
	}
	fmt.Fprintln(w, summaryStyle.Render(fmt.Sprintf("Total searches: %d", total)))
}

func renderHealth(w io.Writer, report healthuc.Report) {
	status := okStyle
	if report.Status != healthuc.Healthy {
		status = errorStyle
	}
	fmt.Fprintln(w, titleStyle.Render("Health")+" "+status.Render(string(report.Status)))

	components := make([]string, 0, len(report.Checks))
	for c := range report.Checks {
		components = append(components, c)
	}
	slices.Sort(components)
	for _, c := range components {
		style := okStyle
		if report.Checks[c] != healthuc.CheckOK {
			style = errorStyle
		}
		fmt.Fprintf(w, "  %-12s %s\n", c, style.Render(string(report.Checks[c])))
	}
}
