package app

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"zonesync/internal/config"
)

func failoverCfg() config.FailoverConfig {
	return config.FailoverConfig{
		Domain:            "example.com",
		RouterRecord:      "www",
		PrimaryTarget:     "primary",
		SecondaryTarget:   "failover",
		PrimaryCheckURL:   "https://primary.example.com/healthz",
		SecondaryCheckURL: "https://failover.example.com/healthz",
		ExpectedStatus:    200,
		TimeoutSeconds:    5,
	}
}

func TestDecideTarget(t *testing.T) {
	cases := []struct {
		primaryOK, secondaryOK bool
		want                   target
	}{
		{true, true, targetPrimary},
		{true, false, targetPrimary},
		{false, true, targetSecondary},
		{false, false, targetNone},
	}
	for _, c := range cases {
		if got := decideTarget(c.primaryOK, c.secondaryOK); got != c.want {
			t.Fatalf("decideTarget(%v, %v) = %v, want %v", c.primaryOK, c.secondaryOK, got, c.want)
		}
	}
}

func TestFailoverPrimaryHealthySkipsSecondaryCheck(t *testing.T) {
	cfg := failoverCfg()
	records := newFakeRecordClient()
	records.setRecord("www.example.com", "CNAME", "failover.example.com")
	rrsets := &fakeRRSetClient{}
	checker := &fakeChecker{healthy: map[string]bool{cfg.PrimaryCheckURL: true}}

	if err := Failover(context.Background(), zerolog.Nop(), records, rrsets, checker, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(checker.calls) != 1 || checker.calls[0] != cfg.PrimaryCheckURL {
		t.Fatalf("expected only the primary check, got %v", checker.calls)
	}
	if len(records.upserts) != 1 || records.upserts[0].Spec.Content != "primary.example.com" {
		t.Fatalf("expected router flipped back to primary, got %+v", records.upserts)
	}
}

func TestFailoverSwitchesToSecondary(t *testing.T) {
	cfg := failoverCfg()
	records := newFakeRecordClient()
	records.setRecord("www.example.com", "CNAME", "primary.example.com")
	rrsets := &fakeRRSetClient{}
	// Primary answers 503, secondary answers 200.
	checker := &fakeChecker{healthy: map[string]bool{cfg.SecondaryCheckURL: true}}

	if err := Failover(context.Background(), zerolog.Nop(), records, rrsets, checker, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records.upserts) != 1 {
		t.Fatalf("expected 1 Cloudflare upsert, got %d", len(records.upserts))
	}
	spec := records.upserts[0].Spec
	if spec.Name != "www.example.com" || spec.Type != "CNAME" || spec.Content != "failover.example.com" || spec.TTL != 60 {
		t.Fatalf("unexpected Cloudflare upsert: %+v", spec)
	}

	if len(rrsets.upserts) != 1 {
		t.Fatalf("expected 1 deSEC upsert, got %d", len(rrsets.upserts))
	}
	rr := rrsets.upserts[0]
	if rr.Domain != "example.com" || rr.Subname != "www" || rr.Type != "CNAME" || rr.TTL != 60 {
		t.Fatalf("unexpected deSEC upsert: %+v", rr)
	}
	if len(rr.Records) != 1 || rr.Records[0] != "failover.example.com." {
		t.Fatalf("deSEC value must carry a trailing dot, got %v", rr.Records)
	}
}

func TestFailoverBothUnhealthyWritesNothing(t *testing.T) {
	cfg := failoverCfg()
	records := newFakeRecordClient()
	records.setRecord("www.example.com", "CNAME", "primary.example.com")
	rrsets := &fakeRRSetClient{}
	checker := &fakeChecker{healthy: map[string]bool{}}

	if err := Failover(context.Background(), zerolog.Nop(), records, rrsets, checker, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records.upserts) != 0 || len(rrsets.upserts) != 0 {
		t.Fatalf("expected no provider writes when both targets are down")
	}
}

func TestFailoverNoopWhenAlreadyDesired(t *testing.T) {
	cfg := failoverCfg()
	records := newFakeRecordClient()
	records.setRecord("www.example.com", "CNAME", "primary.example.com")
	rrsets := &fakeRRSetClient{}
	checker := &fakeChecker{healthy: map[string]bool{cfg.PrimaryCheckURL: true}}

	if err := Failover(context.Background(), zerolog.Nop(), records, rrsets, checker, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records.upserts) != 0 || len(rrsets.upserts) != 0 {
		t.Fatalf("expected idempotent no-op, got %d / %d upserts", len(records.upserts), len(rrsets.upserts))
	}
}

func TestFailoverCreatesRouterWhenMissing(t *testing.T) {
	cfg := failoverCfg()
	records := newFakeRecordClient() // no existing router record
	rrsets := &fakeRRSetClient{}
	checker := &fakeChecker{healthy: map[string]bool{cfg.PrimaryCheckURL: true}}

	if err := Failover(context.Background(), zerolog.Nop(), records, rrsets, checker, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records.upserts) != 1 || records.upserts[0].Spec.Content != "primary.example.com" {
		t.Fatalf("expected router record created pointing at primary, got %+v", records.upserts)
	}
}
