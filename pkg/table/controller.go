// Package table implements the table controller: a canonical row set fetched
// once from a data source, a search-filtered view and a page slice derived
// from it on every read, and the mutations (selection, inline edit, delete)
// that act on the canonical rows.
//
// Example:
//
//	c, err := table.New(types.Config{
//	    DataSource:    "https://example.com/users.json",
//	    RowIdentifier: "id",
//	})
//	if err != nil {
//	    return err
//	}
//	if err := c.Load(ctx); err != nil {
//	    return err // c.Status() is types.StatusError
//	}
//	c.SetSearch("ann")
//	rows := c.PageRows()
package table

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noobCode-69/reusable-table/internal/logging"
	"github.com/noobCode-69/reusable-table/internal/source"
	"github.com/noobCode-69/reusable-table/internal/view"
	"github.com/noobCode-69/reusable-table/pkg/types"
)

var _ types.Table = (*Controller)(nil)

// Controller owns the canonical rows of one table session. All methods are
// safe for concurrent use; every derived value reflects the latest mutation.
type Controller struct {
	mu         sync.RWMutex
	id         string
	config     types.Config
	log        logging.Logger
	sourceOpts source.Options

	rows     []types.Row // canonical; nil until a fetch succeeds
	columns  []string
	err      error
	fetching bool
	search   string
	pager    *view.Pager
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sends controller logs to l. Logs are discarded by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = logging.NewSlogLogger(l)
		}
	}
}

// WithHTTPClient sets the client used when Load opens an HTTP source.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Controller) { c.sourceOpts.HTTPClient = client }
}

// WithFetchTimeout bounds an HTTP fetch started by Load.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *Controller) { c.sourceOpts.Timeout = d }
}

// WithSheet picks the worksheet when Load opens an Excel source.
func WithSheet(name string) Option {
	return func(c *Controller) { c.sourceOpts.Sheet = name }
}

// New creates a controller in the loading state. Call Load or Initialize to
// fetch its rows.
func New(config types.Config, opts ...Option) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		id:     newSessionID(),
		config: config,
		log:    logging.Discard(),
		pager:  view.NewPager(config.GetPageSize()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("session", c.id)
	return c, nil
}

// newSessionID generates a UUID v7 identifying the controller in logs.
func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the session identifier of the controller.
func (c *Controller) ID() string { return c.id }

// Config returns the construction parameters.
func (c *Controller) Config() types.Config { return c.config }

// Load opens the source named by Config.DataSource and initializes the
// controller from it. An unusable URI is reported as a fetch failure.
func (c *Controller) Load(ctx context.Context) error {
	src, err := source.Open(c.config.DataSource, c.sourceOpts)
	if err != nil {
		src = brokenSource{uri: c.config.DataSource, err: err}
	}
	return c.Initialize(ctx, src)
}

// Initialize performs the one fetch of the controller's lifetime. On success
// the rows are installed with default flags and the page resets to 1. On
// failure the controller reports StatusError and the returned error is a
// *types.FetchError. A failed controller may be initialized again; a ready
// one returns types.ErrAlreadyInitialized.
func (c *Controller) Initialize(ctx context.Context, src types.Source) error {
	c.mu.Lock()
	if c.rows != nil {
		c.mu.Unlock()
		return types.ErrAlreadyInitialized
	}
	if c.fetching {
		c.mu.Unlock()
		return types.ErrFetchInProgress
	}
	c.fetching = true
	c.err = nil
	c.mu.Unlock()

	c.log.Info(ctx, "fetching rows", "source", src.URI())
	rows, cols, err := c.fetch(ctx, src)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetching = false

	if err != nil {
		c.err = &types.FetchError{URI: src.URI(), Err: err}
		c.log.Warn(ctx, "fetch failed", "source", src.URI(), "error", err)
		return c.err
	}

	c.rows = rows
	c.columns = cols
	c.pager.Reset()
	c.log.Info(ctx, "table ready", "source", src.URI(), "rows", len(rows), "columns", len(cols))
	return nil
}

func (c *Controller) fetch(ctx context.Context, src types.Source) ([]types.Row, []string, error) {
	ds, err := src.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	return normalize(ds, c.config.RowIdentifier)
}

// Status reports loading, error or ready.
func (c *Controller) Status() types.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.statusLocked()
}

func (c *Controller) statusLocked() types.Status {
	switch {
	case c.rows != nil:
		return types.StatusReady
	case c.err != nil:
		return types.StatusError
	default:
		return types.StatusLoading
	}
}

// Loading reports whether the rows have not been fetched yet.
func (c *Controller) Loading() bool { return c.Status() == types.StatusLoading }

// Failed reports whether the fetch failed.
func (c *Controller) Failed() bool { return c.Status() == types.StatusError }

// Err returns the fetch failure, or nil.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// brokenSource stands in for a source that could not be opened so that the
// failure follows the same path as a failed fetch.
type brokenSource struct {
	uri string
	err error
}

func (s brokenSource) URI() string { return s.uri }

func (s brokenSource) Fetch(context.Context) (*types.Dataset, error) { return nil, s.err }
