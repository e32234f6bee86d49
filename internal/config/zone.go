package config

import (
	"fmt"
	"strings"

	"zonesync/internal/dns"
)

const defaultRecordTTL = 300

// ZoneConfig is the YAML shape of a zone config file.
type ZoneConfig struct {
	Domain  string         `yaml:"domain"`
	Records []RecordConfig `yaml:"records"`
}

type RecordConfig struct {
	Name   string   `yaml:"name"`
	Type   string   `yaml:"type"`
	TTL    int      `yaml:"ttl"`
	Values []string `yaml:"values"`
}

// LoadZone reads and strictly decodes a zone config file. Field-level
// validation happens in BuildRecords.
func LoadZone(path string) (ZoneConfig, error) {
	var cfg ZoneConfig
	if err := loadStrict(path, &cfg); err != nil {
		return ZoneConfig{}, err
	}
	if cfg.Domain == "" {
		return ZoneConfig{}, fmt.Errorf("zone config must have a 'domain' key")
	}
	return cfg, nil
}

// BuildRecords validates and normalizes every configured record into the
// domain model. Types are upper-cased, the TTL defaults to 300 and each
// record carries exactly one value.
func BuildRecords(cfg ZoneConfig) ([]dns.Record, error) {
	records := make([]dns.Record, 0, len(cfg.Records))
	for i, rc := range cfg.Records {
		rec, err := normalizeRecord(cfg.Domain, rc)
		if err != nil {
			return nil, fmt.Errorf("record[%d]: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func normalizeRecord(domain string, rc RecordConfig) (dns.Record, error) {
	name := strings.TrimSpace(rc.Name)
	if name == "" {
		return dns.Record{}, fmt.Errorf("name is empty")
	}

	t := strings.ToUpper(strings.TrimSpace(rc.Type))
	if t == "" {
		return dns.Record{}, fmt.Errorf("type is empty")
	}
	if !dns.IsKnownType(t) {
		return dns.Record{}, fmt.Errorf("unknown record type %q", rc.Type)
	}

	if len(rc.Values) == 0 {
		return dns.Record{}, fmt.Errorf("record %s %s has no values", name, t)
	}
	if len(rc.Values) != 1 {
		// One value per record keeps the Cloudflare side simple.
		return dns.Record{}, fmt.Errorf("record %s %s must have exactly one value", name, t)
	}

	ttl := rc.TTL
	if ttl == 0 {
		ttl = defaultRecordTTL
	}
	if ttl < 0 {
		return dns.Record{}, fmt.Errorf("record %s %s has negative ttl %d", name, t, ttl)
	}

	rec := dns.Record{
		Domain: domain,
		Name:   name,
		Type:   t,
		TTL:    ttl,
		Values: []string{strings.TrimSpace(rc.Values[0])},
	}
	if _, err := rec.Subname(); err != nil {
		return dns.Record{}, err
	}
	return rec, nil
}
