package provider

import "context"

// Record is an existing record as reported by an id-keyed provider.
type Record struct {
	ID      string
	Type    string
	Name    string
	Content string
	TTL     int
}

// RecordSpec is the desired state for a single record in an id-keyed
// provider. Proxied is only meaningful for A/AAAA/CNAME records and is
// left to the provider default when nil.
type RecordSpec struct {
	Name    string
	Type    string
	Content string
	TTL     int
	Proxied *bool
}

// RecordClient is a provider that keys records by an assigned id and
// follows a read-then-upsert model (Cloudflare).
type RecordClient interface {
	ZoneID(ctx context.Context, name string) (string, error)
	GetRecord(ctx context.Context, zoneID, name, recordType string) (*Record, error)
	UpsertRecord(ctx context.Context, zoneID string, spec RecordSpec) error
}

// RRSetClient is a provider that replaces whole RRsets keyed by
// (subname, type) in one idempotent call (deSEC).
type RRSetClient interface {
	UpsertRRSet(ctx context.Context, domain, subname, recordType string, ttl int, records []string) error
}
