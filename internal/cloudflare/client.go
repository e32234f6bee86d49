package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zonesync/internal/provider"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

type Options struct {
	APIToken string
	// BaseURL overrides the public API endpoint, mainly for tests.
	BaseURL string
}

// Client talks to the Cloudflare v4 API with bearer-token auth.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

var _ provider.RecordClient = (*Client)(nil)

// Error is a Cloudflare API failure: either a non-2xx HTTP response or
// an envelope with success=false.
type Error struct {
	Code    int
	Message string
}

func (e Error) Error() string {
	if e.Code == 0 {
		return "cloudflare: " + e.Message
	}
	return fmt.Sprintf("cloudflare: [%d] %s", e.Code, e.Message)
}

func New(opt Options) (*Client, error) {
	if strings.TrimSpace(opt.APIToken) == "" {
		return nil, fmt.Errorf("missing Cloudflare api token")
	}
	base := strings.TrimSuffix(strings.TrimSpace(opt.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		token:   strings.TrimSpace(opt.APIToken),
		baseURL: base,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// ZoneID looks up the zone id for a zone name. Zero matches and more
// than one match are both provider errors.
func (c *Client) ZoneID(ctx context.Context, name string) (string, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".")
	if name == "" {
		return "", fmt.Errorf("missing Cloudflare zone name")
	}

	query := url.Values{}
	query.Set("name", name)

	var resp cfResponse[[]cfZone]
	if err := c.do(ctx, "GET", "/zones?"+query.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		return "", pickError(resp.Errors)
	}
	switch len(resp.Result) {
	case 0:
		return "", Error{Message: fmt.Sprintf("no zone found for %s", name)}
	case 1:
		return resp.Result[0].ID, nil
	default:
		return "", Error{Message: fmt.Sprintf("ambiguous zone lookup for %s: %d matches", name, len(resp.Result))}
	}
}

// GetRecord returns the first record matching (name, type) in the zone,
// or nil when none exists.
func (c *Client) GetRecord(ctx context.Context, zoneID, name, recordType string) (*provider.Record, error) {
	query := url.Values{}
	query.Set("type", strings.ToUpper(strings.TrimSpace(recordType)))
	query.Set("name", strings.TrimSuffix(strings.TrimSpace(name), "."))

	var resp cfResponse[[]cfDNSRecord]
	if err := c.do(ctx, "GET", "/zones/"+url.PathEscape(zoneID)+"/dns_records?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, pickError(resp.Errors)
	}
	if len(resp.Result) == 0 {
		return nil, nil
	}
	r := resp.Result[0]
	return &provider.Record{
		ID:      r.ID,
		Type:    r.Type,
		Name:    r.Name,
		Content: r.Content,
		TTL:     r.TTL,
	}, nil
}

// UpsertRecord looks up the existing (name, type) record and issues a
// full update when present, a create otherwise.
func (c *Client) UpsertRecord(ctx context.Context, zoneID string, spec provider.RecordSpec) error {
	existing, err := c.GetRecord(ctx, zoneID, spec.Name, spec.Type)
	if err != nil {
		return err
	}

	t := strings.ToUpper(strings.TrimSpace(spec.Type))
	body := map[string]any{
		"type":    t,
		"name":    spec.Name,
		"content": spec.Content,
		"ttl":     spec.TTL,
	}
	if spec.Proxied != nil && isProxiable(t) {
		body["proxied"] = *spec.Proxied
	}

	var resp cfResponse[cfDNSRecord]
	if existing != nil {
		err = c.do(ctx, "PUT", "/zones/"+url.PathEscape(zoneID)+"/dns_records/"+url.PathEscape(existing.ID), body, &resp)
	} else {
		err = c.do(ctx, "POST", "/zones/"+url.PathEscape(zoneID)+"/dns_records", body, &resp)
	}
	if err != nil {
		return err
	}
	if !resp.Success {
		return pickError(resp.Errors)
	}
	return nil
}

func isProxiable(t string) bool {
	switch t {
	case "A", "AAAA", "CNAME":
		return true
	default:
		return false
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Error{Code: resp.StatusCode, Message: string(bytes.TrimSpace(b))}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(b, out)
}

type cfResponse[T any] struct {
	Success bool         `json:"success"`
	Errors  []cfAPIError `json:"errors"`
	Result  T            `json:"result"`
}

type cfAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type cfZone struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type cfDNSRecord struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
	TTL     int    `json:"ttl"`
	Proxied bool   `json:"proxied"`
}

func pickError(errs []cfAPIError) error {
	if len(errs) == 0 {
		return Error{Message: "cloudflare api error"}
	}
	return Error{Code: errs[0].Code, Message: errs[0].Message}
}
