package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/metrics"
)

// Client talks to the Supabase PostgREST interface with the service role
// key. It implements both the product read side and the lead write side.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, serviceKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  serviceKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListActive returns every non-killed product row, newest first.
func (c *Client) ListActive(ctx context.Context) ([]entity.Experiment, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/products?select=*&status=neq.%s&order=created_at.desc",
		c.baseURL, entity.StatusKilled)

	var rows []productRow
	if err := c.get(ctx, endpoint, &rows); err != nil {
		metrics.RecordIntegrationError("supabase")
		return nil, err
	}

	out := make([]entity.Experiment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// FindBySlug returns the single non-killed row matching slug, or
// entity.ErrNotFound. Matching is exact; PostgREST eq is case-sensitive.
func (c *Client) FindBySlug(ctx context.Context, slug string) (*entity.Experiment, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/products?select=*&slug=eq.%s&status=neq.%s&limit=1",
		c.baseURL, url.QueryEscape(slug), entity.StatusKilled)

	var rows []productRow
	if err := c.get(ctx, endpoint, &rows); err != nil {
		metrics.RecordIntegrationError("supabase")
		return nil, err
	}
	if len(rows) == 0 {
		return nil, entity.ErrNotFound
	}
	e := rows[0].toEntity()
	return &e, nil
}

// FindIDBySlug resolves a slug to its numeric identifier, selecting only
// the id column.
func (c *Client) FindIDBySlug(ctx context.Context, slug string) (int64, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/products?select=id&slug=eq.%s&status=neq.%s&limit=1",
		c.baseURL, url.QueryEscape(slug), entity.StatusKilled)

	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := c.get(ctx, endpoint, &rows); err != nil {
		metrics.RecordIntegrationError("supabase")
		return 0, err
	}
	if len(rows) == 0 {
		return 0, entity.ErrNotFound
	}
	return rows[0].ID, nil
}

// Upsert inserts a lead. ignore-duplicates with return=representation makes
// PostgREST answer a fresh insert with a one-element array and a skipped
// repeat with an empty one, so a duplicate maps to entity.ErrDuplicateEmail
// and callers can treat it as success without re-firing signup events. A
// 409 without upsert semantics maps the same way.
func (c *Client) Upsert(ctx context.Context, lead *entity.Lead) error {
	endpoint := fmt.Sprintf("%s/rest/v1/leads?on_conflict=email", c.baseURL)

	payload := leadRowFrom(lead)
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "resolution=ignore-duplicates,return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordIntegrationError("supabase")
		return fmt.Errorf("supabase insert request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return entity.ErrDuplicateEmail
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordIntegrationError("supabase")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("supabase insert rejected (status %d): %s", resp.StatusCode, string(body))
	}

	var inserted []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&inserted); err != nil {
		return fmt.Errorf("decode supabase insert response: %w", err)
	}
	if len(inserted) == 0 {
		return entity.ErrDuplicateEmail
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("supabase query rejected (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode supabase response: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "grapl-site/1.0")
}
