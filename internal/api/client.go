package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"blogfront/internal/domain"
	"blogfront/internal/metrics"
	"blogfront/internal/query"
	"blogfront/internal/storage"
)

const (
	DefaultBaseURL  = "https://blog-app-backend-three-dusky.vercel.app/api"
	DefaultTimeout  = 15 * time.Second
	DefaultCacheTTL = time.Hour

	// SlugSearchLimit is the page size used by the slug lookup fallback.
	SlugSearchLimit = 100

	maxBodySize = 8 << 20 // 8 MB
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	Burst     int
	UserAgent string
}

// Client talks to the blog content API.
type Client struct {
	baseURL   string
	http      *http.Client
	cache     storage.Cache
	cacheTTL  time.Duration
	limiter   *rate.Limiter
	group     singleflight.Group
	userAgent string
	log       logrus.FieldLogger
}

// New creates a content API client. cache may be nil to disable the
// freshness window.
func New(opts Options, cache storage.Cache, logger logrus.FieldLogger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "blogfront/1.0"
	}
	if cache == nil {
		cache = storage.NopCache{}
	}

	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      &http.Client{Timeout: opts.Timeout},
		cache:     cache,
		cacheTTL:  opts.CacheTTL,
		userAgent: opts.UserAgent,
		log:       logger.WithField("component", "api_client"),
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return c
}

// FetchPage returns one page of articles matching q.
func (c *Client) FetchPage(ctx context.Context, q query.Query) (domain.PageResult, error) {
	body, err := c.get(ctx, "fetchPage", c.postsURL(q))
	if err != nil {
		return domain.PageResult{}, err
	}

	var resp domain.PageResult
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.WithError(err).Warn("Failed to decode posts response")
		return domain.PageResult{}, decodeError(err)
	}
	if resp.Articles == nil {
		resp.Articles = []domain.Article{}
	}
	return resp, nil
}

// FetchArticle returns the article with the given id.
func (c *Client) FetchArticle(ctx context.Context, id string) (domain.Article, error) {
	body, err := c.get(ctx, "fetchArticle", c.baseURL+"/posts/"+url.PathEscape(id))
	if err != nil {
		if IsNotFound(err) {
			return domain.Article{}, NewNotFound()
		}
		return domain.Article{}, err
	}

	var resp struct {
		Data *domain.Article `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.WithError(err).WithField("id", id).Warn("Failed to decode post response")
		return domain.Article{}, decodeError(err)
	}
	if resp.Data == nil {
		return domain.Article{}, NewNotFound()
	}
	return *resp.Data, nil
}

// FetchArticleBySlug resolves a slug without a dedicated endpoint: it
// searches for the slug text and scans one large page for an exact match.
// The backend search may not surface the article at all, so prefer
// FetchArticle whenever an id is known.
func (c *Client) FetchArticleBySlug(ctx context.Context, slug string) (domain.Article, error) {
	page, err := c.FetchPage(ctx, query.Query{Page: 1, Limit: SlugSearchLimit, Search: slug})
	if err != nil {
		return domain.Article{}, err
	}
	for _, a := range page.Articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	c.log.WithFields(logrus.Fields{
		"slug":    slug,
		"scanned": len(page.Articles),
	}).Info("Slug lookup found no exact match")
	return domain.Article{}, NewNotFound()
}

func (c *Client) postsURL(q query.Query) string {
	u := c.baseURL + "/posts"
	if encoded := q.String(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// get returns the body of a successful GET, consulting the cache first.
// Identical concurrent requests share one round trip; each caller still
// honours its own context.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	key := http.MethodGet + " " + rawURL

	cached, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.WithError(err).Warn("Cache lookup failed, fetching from API")
	}
	metrics.RecordCacheLookup(hit)
	if hit {
		return cached, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		detached := context.WithoutCancel(ctx)
		body, err := c.do(detached, op, rawURL)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(detached, key, body, c.cacheTTL); err != nil {
			c.log.WithError(err).Warn("Failed to cache response")
		}
		return body, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, transportError(ctx.Err())
	}
}

// do performs a single GET against the API.
func (c *Client) do(ctx context.Context, op, rawURL string) ([]byte, error) {
	log := c.log.WithFields(logrus.Fields{
		"op":  op,
		"url": rawURL,
	})

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, transportError(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordAPIRequest(op, 0, time.Since(start).Seconds())
		log.WithError(err).Error("Content API request failed")
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	duration := time.Since(start)
	metrics.RecordAPIRequest(op, resp.StatusCode, duration.Seconds())
	if err != nil {
		log.WithError(err).Error("Failed to read content API response")
		return nil, transportError(err)
	}

	log = log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": duration.String(),
	})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ce := statusError(resp.StatusCode, body)
		log.WithField("message", ce.Message).Warn("Content API returned an error status")
		return nil, ce
	}

	log.Debug("Content API request completed")
	return body, nil
}
