package app

import (
	"context"
	"fmt"

	"zonesync/internal/provider"
)

type recordUpsert struct {
	ZoneID string
	Spec   provider.RecordSpec
}

type rrsetUpsert struct {
	Domain  string
	Subname string
	Type    string
	TTL     int
	Records []string
}

// fakeRecordClient is an in-memory stand-in for the Cloudflare client.
type fakeRecordClient struct {
	zoneID   string
	existing map[string]*provider.Record // key: name|type
	upserts  []recordUpsert

	zoneErr   error
	failAfter int // fail the (failAfter+1)-th upsert when > -1
}

func newFakeRecordClient() *fakeRecordClient {
	return &fakeRecordClient{
		zoneID:    "zone-1",
		existing:  map[string]*provider.Record{},
		failAfter: -1,
	}
}

func (c *fakeRecordClient) setRecord(name, recordType, content string) {
	c.existing[name+"|"+recordType] = &provider.Record{
		ID: "rec-" + name, Name: name, Type: recordType, Content: content,
	}
}

func (c *fakeRecordClient) ZoneID(ctx context.Context, name string) (string, error) {
	if c.zoneErr != nil {
		return "", c.zoneErr
	}
	return c.zoneID, nil
}

func (c *fakeRecordClient) GetRecord(ctx context.Context, zoneID, name, recordType string) (*provider.Record, error) {
	return c.existing[name+"|"+recordType], nil
}

func (c *fakeRecordClient) UpsertRecord(ctx context.Context, zoneID string, spec provider.RecordSpec) error {
	if c.failAfter > -1 && len(c.upserts) == c.failAfter {
		return fmt.Errorf("record upsert failed")
	}
	c.upserts = append(c.upserts, recordUpsert{ZoneID: zoneID, Spec: spec})
	return nil
}

// fakeRRSetClient is an in-memory stand-in for the deSEC client.
type fakeRRSetClient struct {
	upserts   []rrsetUpsert
	upsertErr error
}

func (c *fakeRRSetClient) UpsertRRSet(ctx context.Context, domain, subname, recordType string, ttl int, records []string) error {
	if c.upsertErr != nil {
		return c.upsertErr
	}
	c.upserts = append(c.upserts, rrsetUpsert{
		Domain: domain, Subname: subname, Type: recordType, TTL: ttl, Records: records,
	})
	return nil
}

// fakeChecker maps check URLs to fixed health outcomes.
type fakeChecker struct {
	healthy map[string]bool
	calls   []string
}

func (c *fakeChecker) Healthy(ctx context.Context, url string) bool {
	c.calls = append(c.calls, url)
	return c.healthy[url]
}
