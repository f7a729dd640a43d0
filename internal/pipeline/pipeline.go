package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kadresources/sheetsync/internal/logger"
	"github.com/kadresources/sheetsync/internal/resource"
	"github.com/kadresources/sheetsync/internal/sheets"
)

var (
	// ErrNoSheets means there was nothing to process
	ErrNoSheets = errors.New("no sheets to process")
	// ErrNoData means every sheet came back empty or failed
	ErrNoData = errors.New("no sheet produced any entries")
)

// Options configures a Run
type Options struct {
	Sheets   []string
	Source   sheets.Source
	Classify []resource.ClassifyOption

	// Now supplies the last_updated timestamp; defaults to time.Now
	Now func() time.Time
}

// SheetResult describes what happened to one sheet
type SheetResult struct {
	Name     string                `json:"name"`
	Rows     int                   `json:"rows"`
	Stats    resource.HeadingStats `json:"stats"`
	Error    string                `json:"error,omitempty"`
	Duration time.Duration         `json:"duration"`
}

// MarshalJSON writes Duration in time.Duration string form, e.g. "1.2s"
func (r SheetResult) MarshalJSON() ([]byte, error) {
	type plain SheetResult
	return json.Marshal(struct {
		plain
		Duration string `json:"duration"`
	}{plain(r), r.Duration.String()})
}

// Failed reports whether the sheet could not be fetched
func (r SheetResult) Failed() bool {
	return r.Error != ""
}

// Result is the outcome of a successful Run
type Result struct {
	Document *resource.Document `json:"-"`
	Sheets   []SheetResult      `json:"sheets"`
	Metrics  logger.Snapshot    `json:"metrics"`
}

// Run fetches and classifies each sheet in order and assembles the document.
// It returns ErrNoSheets when no non-blank sheet name was given and ErrNoData
// when no sheet yielded entries; in both cases no document is returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("no sheet source configured")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	names := make([]string, 0, len(opts.Sheets))
	for _, name := range opts.Sheets {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSheets
	}

	logger.ResetMetrics()
	logger.Info("Starting sheet sync", logger.Fields{
		"sheets": len(names),
	})

	result := &Result{Sheets: make([]SheetResult, 0, len(names))}
	sections := make([]resource.Heading, 0, len(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sync interrupted before %q: %w", name, err)
		}

		sr, section := processSheet(ctx, opts, name)
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("sync interrupted during %q: %w", name, err)
		}

		result.Sheets = append(result.Sheets, sr)
		sections = append(sections, resource.Heading{Name: name, Section: section})
	}

	doc := resource.Assemble(sections, now())
	result.Metrics = logger.MetricsSnapshot()
	logger.Debug("Sheet sync metrics", result.Metrics.Fields())
	if len(doc.Headings) == 0 {
		return nil, ErrNoData
	}
	result.Document = doc

	logger.Info("Sheet sync complete", logger.Fields{
		"headings": len(doc.Headings),
		"entries":  doc.TotalEntries(),
	})

	return result, nil
}

// processSheet fetches and classifies one sheet. Fetch errors are logged and
// turned into an empty section so the remaining sheets still run.
func processSheet(ctx context.Context, opts Options, name string) (SheetResult, resource.Section) {
	logger.Info("Processing sheet", logger.Fields{"sheet": name})

	start := time.Now()
	rows, err := opts.Source.Rows(ctx, name)
	elapsed := time.Since(start)
	logger.RecordTiming("sheets.fetch", elapsed)

	sr := SheetResult{Name: name, Duration: elapsed}
	if err != nil {
		logger.IncrCounter("sheets.failed")
		logger.Warn("Could not fetch sheet", logger.Fields{
			"sheet": name,
			"error": err.Error(),
		})
		sr.Error = err.Error()
		sr.Stats = resource.HeadingStats{Name: name}
		return sr, resource.Section{}
	}
	logger.IncrCounter("sheets.fetched")

	section := resource.Classify(rows, opts.Classify...)
	sr.Rows = len(rows)
	sr.Stats = resource.StatsFor(name, section)
	logger.SetGauge("entries."+name, float64(sr.Stats.Total))

	if section.IsEmpty() {
		logger.IncrCounter("sheets.empty")
		logger.Info("No data found for sheet", logger.Fields{
			"sheet": name,
			"rows":  len(rows),
		})
		return sr, section
	}

	logger.Info("Found entries", logger.Fields{
		"sheet":   name,
		"entries": sr.Stats.Total,
		"summary": sr.Stats.String(),
	})

	return sr, section
}
