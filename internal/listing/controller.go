package listing

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"blogfront/internal/api"
	"blogfront/internal/domain"
	"blogfront/internal/metrics"
	"blogfront/internal/query"
	"blogfront/internal/source"
)

// DefaultTimeout bounds a single page fetch.
const DefaultTimeout = 15 * time.Second

// Result is the outcome of fetching one query. A failed fetch carries an
// empty page alongside the error.
type Result struct {
	Query query.Query
	Page  domain.PageResult
	Err   error
}

func (r Result) OK() bool { return r.Err == nil }

// Empty reports whether the fetch succeeded with no articles.
func (r Result) Empty() bool {
	return r.Err == nil && r.Page.Empty()
}

func (r Result) NotFound() bool { return api.IsNotFound(r.Err) }

// Retryable reports whether re-issuing the same query may succeed.
func (r Result) Retryable() bool {
	if r.Err == nil {
		return false
	}
	if ce, ok := api.AsClientError(r.Err); ok {
		return ce.Retryable()
	}
	return true
}

// Message returns the reader-facing error message, or "" on success.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	if ce, ok := api.AsClientError(r.Err); ok && ce.Message != "" {
		return ce.Message
	}
	return api.GenericMessage
}

// State is a snapshot of the controller.
type State struct {
	Query   query.Query
	Result  Result
	Seq     uint64
	Loading bool
}

// Ticket identifies one dispatched fetch. It is cancelled as soon as a newer
// fetch is dispatched or the controller is closed.
type Ticket struct {
	Seq   uint64
	Query query.Query

	ctx context.Context
}

// Option configures a Controller.
type Option func(*Controller)

// WithInitialQuery seeds the controller, typically from the address.
func WithInitialQuery(q query.Query) Option {
	return func(c *Controller) {
		c.query = q.Normalize()
	}
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Controller owns the listing query and the result shown for it. Every edit
// dispatches a fresh fetch; results arriving for superseded queries are
// discarded.
type Controller struct {
	src     source.ArticleSource
	log     logrus.FieldLogger
	timeout time.Duration

	mu      sync.Mutex
	query   query.Query
	result  Result
	seq     uint64
	loading bool
	cancel  context.CancelFunc
	closed  bool
}

// NewController creates a controller reading from src.
func NewController(src source.ArticleSource, logger logrus.FieldLogger, opts ...Option) *Controller {
	c := &Controller{
		src:     src,
		log:     logger.WithField("component", "listing"),
		timeout: DefaultTimeout,
		query:   query.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.result = Result{Query: c.query}
	return c
}

// Query returns the current query.
func (c *Controller) Query() query.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Query:   c.query,
		Result:  c.result,
		Seq:     c.seq,
		Loading: c.loading,
	}
}

// Begin applies ch to the current query and dispatches a fetch for it,
// superseding any fetch in flight.
func (c *Controller) Begin(ch Change) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(Next(c.query, ch))
}

// BeginQuery dispatches a fetch for q as-is.
func (c *Controller) BeginQuery(q query.Query) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(q.Normalize())
}

// BeginRetry re-dispatches the current query unchanged.
func (c *Controller) BeginRetry() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(c.query)
}

func (c *Controller) dispatchLocked(q query.Query) Ticket {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	if c.closed {
		cancel()
	}

	c.seq++
	c.query = q
	c.loading = true
	c.cancel = cancel

	c.log.WithFields(logrus.Fields{
		"seq":   c.seq,
		"query": q.String(),
	}).Debug("Dispatching page fetch")
	return Ticket{Seq: c.seq, Query: q, ctx: ctx}
}

// Fetch runs the fetch for t. It returns early when ctx ends, when the fetch
// times out, or when t is superseded.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if t.ctx != nil {
		stop := context.AfterFunc(t.ctx, cancel)
		defer stop()
	}

	var (
		page domain.PageResult
		err  error
	)
	if t.ctx != nil && t.ctx.Err() != nil {
		err = &api.ClientError{Message: api.GenericMessage, Err: t.ctx.Err()}
	} else {
		page, err = c.src.FetchPage(ctx, t.Query)
	}
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"seq":   t.Seq,
			"query": t.Query.String(),
		}).Warn("Page fetch failed")
		return Result{
			Query: t.Query,
			Page:  domain.PageResult{Articles: []domain.Article{}},
			Err:   err,
		}
	}
	return Result{Query: t.Query, Page: page}
}

// Complete stores r as the current result if t is still the latest ticket.
// It reports whether r was kept.
func (c *Controller) Complete(t Ticket, r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || t.Seq != c.seq {
		metrics.RecordStale()
		c.log.WithFields(logrus.Fields{
			"seq":     t.Seq,
			"current": c.seq,
		}).Debug("Discarding stale page result")
		return false
	}

	c.result = r
	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return true
}

// Apply edits the query and fetches the resulting page. The returned result
// is only stored when no newer fetch was dispatched meanwhile.
func (c *Controller) Apply(ctx context.Context, ch Change) Result {
	return c.run(ctx, c.Begin(ch))
}

// Load replaces the query with q and fetches it.
func (c *Controller) Load(ctx context.Context, q query.Query) Result {
	return c.run(ctx, c.BeginQuery(q))
}

// Retry re-fetches the current query without changing it.
func (c *Controller) Retry(ctx context.Context) Result {
	return c.run(ctx, c.BeginRetry())
}

func (c *Controller) run(ctx context.Context, t Ticket) Result {
	r := c.Fetch(ctx, t)
	c.Complete(t, r)
	return r
}

// Close cancels any fetch in flight. Later completions are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
