package nomad

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL points at the public NOMAD production API.
	DefaultBaseURL = "https://nomad-lab.eu/prod/v1/api/v1"

	defaultPageSize = 100

	// defaultMaxPages bounds a single extraction regardless of any
	// record cap, so an inconsistent cursor cannot loop forever.
	defaultMaxPages = 50
)

// ErrPageLimit is logged (not returned) when pagination hits the hard page
// ceiling; the records gathered up to that point are still returned.
var ErrPageLimit = errors.New("page ceiling reached before cursor exhausted")

type Config struct {
	BaseURL   string
	Token     string
	PageSize  int
	MaxPages  int
	RateLimit float64
	RateBurst int

	// Transport allows injecting a stub round tripper in tests.
	Transport http.RoundTripper
}

// Client talks to the NOMAD entries, datasets, and uploads endpoints. All
// requests share one rate limiter so page loops cannot hammer the service.
type Client struct {
	baseURL  string
	token    string
	pageSize int
	maxPages int
	http     *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

func NewClient(cfg Config, log *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10.0
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 5
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
		http:     &http.Client{Transport: cfg.Transport},
		limiter:  rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		log:      log,
	}
}

// DatasetEntries retrieves every entry of a dataset, following the opaque
// continuation cursor until the set is exhausted, maxEntries records have
// been gathered (0 means no cap), or a page request fails. A failed page
// aborts pagination and returns the partial set accumulated so far.
func (c *Client) DatasetEntries(ctx context.Context, datasetID string, maxEntries int) *RecordSet {
	fetch := func(ctx context.Context, cursor string) (*pageResponse, error) {
		query := url.Values{}
		query.Set("dataset_id", datasetID)
		query.Set("page_size", strconv.Itoa(c.pageSize))
		query.Set("owner", "public")
		if cursor != "" {
			query.Set("page_after_value", cursor)
		}
		return c.getPage(ctx, "/entries", query)
	}
	return c.paginate(ctx, fetch, maxEntries)
}

// UploadEntries retrieves every entry belonging to one upload via the
// entries query endpoint.
func (c *Client) UploadEntries(ctx context.Context, uploadID string, maxEntries int) *RecordSet {
	return c.queryEntries(ctx, map[string]any{"upload_id": uploadID}, maxEntries)
}

// EntriesByUploadName retrieves entries whose upload carries the given
// human-readable name.
func (c *Client) EntriesByUploadName(ctx context.Context, uploadName string, maxEntries int) *RecordSet {
	return c.queryEntries(ctx, map[string]any{"upload_name": uploadName}, maxEntries)
}

func (c *Client) queryEntries(ctx context.Context, filter map[string]any, maxEntries int) *RecordSet {
	fetch := func(ctx context.Context, cursor string) (*pageResponse, error) {
		paging := map[string]any{"page_size": c.pageSize}
		if cursor != "" {
			paging["page_after_value"] = cursor
		}
		body := map[string]any{
			"owner":      "public",
			"query":      filter,
			"pagination": paging,
		}
		return c.postPage(ctx, "/entries/query", body)
	}
	return c.paginate(ctx, fetch, maxEntries)
}

type pageFunc func(ctx context.Context, cursor string) (*pageResponse, error)

// paginate drives the cursor loop shared by all entry retrievals. It never
// returns an error: a failed page ends the loop and the caller inspects
// Retrieval to see whether the set is complete.
func (c *Client) paginate(ctx context.Context, fetch pageFunc, maxEntries int) *RecordSet {
	set := &RecordSet{}
	cursor := ""

	for {
		if set.Retrieval.PagesFetched >= c.maxPages {
			c.log.Warn("aborting pagination",
				zap.Error(ErrPageLimit),
				zap.Int("pages_fetched", set.Retrieval.PagesFetched))
			break
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			c.log.Warn("page request failed, returning partial result",
				zap.Error(err),
				zap.Int("retrieved", len(set.Records)))
			break
		}

		set.Records = append(set.Records, page.Data...)
		set.Retrieval.PagesFetched++
		if set.Retrieval.TotalEstimated == 0 {
			set.Retrieval.TotalEstimated = page.Pagination.Total
		}

		if len(page.Data) < c.pageSize {
			break
		}
		if maxEntries > 0 && len(set.Records) >= maxEntries {
			break
		}
		cursor = page.Pagination.NextPageAfterValue
		if cursor == "" {
			break
		}
	}

	// Sampling keeps the first N records in cursor order so repeated runs
	// see the same subset.
	if maxEntries > 0 && len(set.Records) > maxEntries {
		set.Records = set.Records[:maxEntries]
	}
	set.Retrieval.RetrievedCount = len(set.Records)
	if set.Retrieval.TotalEstimated == 0 {
		set.Retrieval.TotalEstimated = len(set.Records)
	}
	return set
}

// EntryFiles fetches the file listing of a single entry.
func (c *Client) EntryFiles(ctx context.Context, entryID string) ([]string, error) {
	query := url.Values{}
	query.Set("include", "files")
	data, err := c.get(ctx, "/entries/"+url.PathEscape(entryID), query)
	if err != nil {
		return nil, err
	}
	var resp entryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding entry files: %w", err)
	}
	return resp.Data.Files, nil
}

// ListDatasets returns up to max public datasets.
func (c *Client) ListDatasets(ctx context.Context, max int) ([]Dataset, error) {
	if max <= 0 {
		max = 20
	}
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(max))
	query.Set("owner", "public")
	data, err := c.get(ctx, "/datasets", query)
	if err != nil {
		return nil, err
	}
	var resp datasetsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decoding datasets: %w", err)
	}
	return resp.Data, nil
}

func (c *Client) getPage(ctx context.Context, path string, query url.Values) (*pageResponse, error) {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var page pageResponse
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return &page, nil
}

func (c *Client) postPage(ctx context.Context, path string, body map[string]any) (*pageResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}
	data, err := c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	var page pageResponse
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}
	return &page, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	full := c.baseURL + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s returned HTTP %d: %s", path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
