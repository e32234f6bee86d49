// Package app holds the two orchestration routines: syncing a zone config
// into both providers and flipping the failover router record.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"zonesync/internal/dns"
	"zonesync/internal/provider"
)

// Sync upserts every configured record into Cloudflare (by absolute name)
// and deSEC (by domain and subname), in config order. There is no
// transactionality across the two providers: the first error halts
// processing and leaves earlier upserts applied.
func Sync(ctx context.Context, log zerolog.Logger, records provider.RecordClient, rrsets provider.RRSetClient, domain string, recs []dns.Record) error {
	zoneID, err := records.ZoneID(ctx, domain)
	if err != nil {
		return err
	}
	log.Info().Str("domain", domain).Str("zone_id", zoneID).Msg("resolved Cloudflare zone")

	for _, rec := range recs {
		fqdn := rec.FQDN()
		sub, err := rec.Subname()
		if err != nil {
			return err
		}
		value := rec.Values[0]

		log.Info().
			Str("type", rec.Type).
			Str("fqdn", fqdn).
			Str("value", value).
			Int("ttl", rec.TTL).
			Msg("upserting record in Cloudflare and deSEC")

		if err := records.UpsertRecord(ctx, zoneID, provider.RecordSpec{
			Name:    fqdn,
			Type:    rec.Type,
			Content: value,
			TTL:     rec.TTL,
		}); err != nil {
			return err
		}
		if err := rrsets.UpsertRRSet(ctx, rec.Domain, sub, rec.Type, rec.TTL, rec.Values); err != nil {
			return err
		}
	}

	log.Info().Int("records", len(recs)).Msg("sync completed")
	return nil
}

// PrintPlan logs the upserts Sync would perform, without touching either
// provider.
func PrintPlan(log zerolog.Logger, domain string, recs []dns.Record) {
	log.Info().Str("domain", domain).Int("records", len(recs)).Msg("dry run")
	for _, rec := range recs {
		sub, err := rec.Subname()
		if err != nil {
			sub = "?"
		}
		log.Info().
			Str("type", rec.Type).
			Str("fqdn", rec.FQDN()).
			Str("subname", sub).
			Str("value", rec.Values[0]).
			Int("ttl", rec.TTL).
			Msg("would upsert")
	}
}
