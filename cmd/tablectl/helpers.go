// Shared helpers for tablectl CLI commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/noobCode-69/reusable-table/internal/logging"
	"github.com/noobCode-69/reusable-table/internal/shell"
	"github.com/noobCode-69/reusable-table/internal/source"
	"github.com/noobCode-69/reusable-table/pkg/table"
)

// newLogger builds the slog logger configured by log_level and log_format.
// Logs go to w (stderr in normal use).
func (a *app) newLogger(w io.Writer) (*slog.Logger, error) {
	h, err := logging.NewHandler(w, a.settings.LogFormat, a.settings.LogLevel)
	if err != nil {
		return nil, userError(err)
	}
	return slog.New(h), nil
}

// loadTable creates a controller from the resolved settings and performs its
// fetch. Configuration problems and unusable source URIs are user errors; a
// failed read is a system error.
func (a *app) loadTable(ctx context.Context, log *slog.Logger) (*table.Controller, error) {
	if a.settings.DataSource == "" {
		return nil, userError(errors.New("no data source: pass --source or set data_source in config.yaml"))
	}

	c, err := table.New(a.settings.tableConfig(),
		table.WithLogger(log),
		table.WithFetchTimeout(a.settings.HTTPTimeout),
		table.WithSheet(a.settings.Sheet),
	)
	if err != nil {
		return nil, userError(fmt.Errorf("config: %w", err))
	}

	if err := c.Load(ctx); err != nil {
		if isBadSource(err) {
			return nil, userError(err)
		}
		return nil, sysError(err)
	}
	return c, nil
}

// newRenderer returns the output renderer honoring --json.
func (a *app) newRenderer(w io.Writer) *shell.Renderer {
	return shell.NewRenderer(w, a.jsonMode)
}

// isBadSource reports whether a fetch failed because the data source URI
// itself is unusable rather than because reading it failed.
func isBadSource(err error) bool {
	return errors.Is(err, source.ErrUnsupportedSource) || errors.Is(err, source.ErrInvalidURI)
}
