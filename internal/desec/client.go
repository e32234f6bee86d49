package desec

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

const defaultBaseURL = "https://desec.io/api/v1"

type Options struct {
	APIToken string
	// BaseURL overrides the public API endpoint, mainly for tests.
	BaseURL string
}

// Client talks to the deSEC API. deSEC models records as RRsets keyed by
// (subname, type), so a single PUT replaces the whole set.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

var _ provider.RRSetClient = (*Client)(nil)

// Error is a non-2xx response from the deSEC API.
type Error struct {
	Status  int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("desec: [%d] %s", e.Status, e.Message)
}

func New(opt Options) (*Client, error) {
	if strings.TrimSpace(opt.APIToken) == "" {
		return nil, fmt.Errorf("missing deSEC api token")
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

type rrsetPayload struct {
	Subname string   `json:"subname"`
	Type    string   `json:"type"`
	TTL     int      `json:"ttl"`
	Records []string `json:"records"`
}

// UpsertRRSet replaces the (subname, type) RRset of domain with the given
// records and ttl. The apex uses subname "@". PUT is idempotent: deSEC
// creates the RRset when absent and overwrites it otherwise.
func (c *Client) UpsertRRSet(ctx context.Context, domain, subname, recordType string, ttl int, records []string) error {
	recordType = strings.ToUpper(strings.TrimSpace(recordType))
	path := fmt.Sprintf("/domains/%s/rrsets/%s/%s/",
		url.PathEscape(domain), url.PathEscape(subname), url.PathEscape(recordType))

	body, err := json.Marshal(rrsetPayload{
		Subname: subname,
		Type:    recordType,
		TTL:     ttl,
		Records: records,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		b, _ := io.ReadAll(resp.Body)
		return Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("upsert rrset %s %s %s: %s", domain, subname, recordType, bytes.TrimSpace(b)),
		}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
