package discovery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kadresources/sheetsync/internal/logger"
)

// ErrNoSheets is returned when no strategy produced a sheet name
var ErrNoSheets = errors.New("no sheet names discovered")

// Strategy is one way of finding sheet names
type Strategy interface {
	Name() string
	Discover(ctx context.Context) ([]string, error)
}

// Discoverer runs strategies in order until one returns names
type Discoverer struct {
	strategies []Strategy
}

// New creates a Discoverer trying strategies in the given order
func New(strategies ...Strategy) *Discoverer {
	return &Discoverer{strategies: strategies}
}

// Discover returns the names found by the first successful strategy.
// Strategy errors are logged and the next strategy is tried.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	for _, s := range d.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		names, err := s.Discover(ctx)
		if err != nil {
			logger.Warn("Sheet discovery strategy failed", logger.Fields{
				"strategy": s.Name(),
				"error":    err.Error(),
			})
			continue
		}
		if len(names) == 0 {
			logger.Debug("Sheet discovery strategy found nothing", logger.Fields{
				"strategy": s.Name(),
			})
			continue
		}

		logger.Info("Discovered sheets", logger.Fields{
			"strategy": s.Name(),
			"sheets":   names,
		})
		return names, nil
	}

	return nil, ErrNoSheets
}

// Resolve returns configured names when present, otherwise runs discovery.
// A nil Discoverer with no configured names is ErrNoSheets.
func Resolve(ctx context.Context, configured []string, d *Discoverer) ([]string, error) {
	if names := cleanNames(configured, false); len(names) > 0 {
		return names, nil
	}
	if d == nil {
		return nil, ErrNoSheets
	}

	names, err := d.Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering sheets: %w", err)
	}
	return names, nil
}

// cleanNames trims, optionally URL-decodes, and de-duplicates names in order.
// Decoded names starting with "_" or shorter than two characters are dropped
// since they are page internals rather than tabs.
func cleanNames(raw []string, decode bool) []string {
	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))

	for _, name := range raw {
		if decode {
			if unescaped, err := url.PathUnescape(name); err == nil {
				name = unescaped
			}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if decode && (name[0] == '_' || len([]rune(name)) < 2) {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	return names
}
