package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/kadresources/sheetsync/internal/logger"
	"github.com/kadresources/sheetsync/internal/pipeline"
	"github.com/kadresources/sheetsync/internal/resource"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult summarizes one sync run
type OutputResult struct {
	SyncedAt     time.Time               `json:"synced_at"`
	Output       string                  `json:"output"`
	DryRun       bool                    `json:"dry_run,omitempty"`
	Sheets       []pipeline.SheetResult  `json:"sheets"`
	Headings     []resource.HeadingStats `json:"headings"`
	TotalEntries int                     `json:"total_entries"`
	Changes      *resource.ChangeSummary `json:"changes,omitempty"`
	Metrics      logger.Snapshot         `json:"metrics"`
}

// FailedSheets returns the names of sheets that could not be fetched
func (r *OutputResult) FailedSheets() []string {
	var failed []string
	for _, s := range r.Sheets {
		if s.Failed() {
			failed = append(failed, s.Name)
		}
	}
	return failed
}

// WriteOutput writes the summary in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	bold := color.New(color.Bold)

	if result.DryRun {
		yellow.Fprintf(w, "Dry run: %s not written\n", result.Output)
	} else {
		green.Fprintf(w, "✅ Successfully wrote data to %s\n", result.Output)
	}

	bold.Fprintf(w, "📊 Total headings: %d\n", len(result.Headings))
	for _, h := range result.Headings {
		if verbose {
			fmt.Fprintf(w, "   - %s: %s\n", h.Name, h)
		} else {
			fmt.Fprintf(w, "   - %s: %d entries\n", h.Name, h.Total)
		}
	}
	bold.Fprintf(w, "📈 Total entries: %d\n", result.TotalEntries)
	if verbose {
		c := result.Metrics.Counters
		fmt.Fprintf(w, "   fetched %d, failed %d, empty %d", c["sheets.fetched"], c["sheets.failed"], c["sheets.empty"])
		if fetch, ok := result.Metrics.Timings["sheets.fetch"]; ok {
			fmt.Fprintf(w, " (avg fetch %s, max %s)", fetch.Average, fetch.Max)
		}
		fmt.Fprintln(w)
	}

	if failed := result.FailedSheets(); len(failed) > 0 {
		yellow.Fprintf(w, "\n⚠️  %d sheet(s) could not be fetched:\n", len(failed))
		for _, s := range result.Sheets {
			if s.Failed() {
				fmt.Fprintf(w, "   - %s: %s\n", s.Name, s.Error)
			}
		}
	}

	if result.Changes != nil && result.Changes.HasChanges() {
		fmt.Fprintln(w, "\nChanges since last run:")
		for _, name := range result.Changes.AddedHeadings {
			green.Fprintf(w, "   + %s (new heading)\n", name)
		}
		for _, name := range result.Changes.RemovedHeadings {
			yellow.Fprintf(w, "   - %s (heading removed)\n", name)
		}
		for _, c := range result.Changes.Changes {
			fmt.Fprintf(w, "   ~ %s: +%d -%d\n", c.Name, c.Added, c.Removed)
		}
	}

	return nil
}
