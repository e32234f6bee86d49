package app

import (
	"context"

	"github.com/rs/zerolog"

	"zonesync/internal/config"
	"zonesync/internal/dns"
	"zonesync/internal/provider"
)

// routerTTL is fixed for failover updates so a flip propagates quickly.
const routerTTL = 60

// HealthChecker probes one URL. Implementations must treat transport
// failures as unhealthy rather than returning an error.
type HealthChecker interface {
	Healthy(ctx context.Context, url string) bool
}

type target int

const (
	targetNone target = iota
	targetPrimary
	targetSecondary
)

// decideTarget picks the desired router target by fixed priority: a
// healthy primary always wins, the secondary is only consulted when the
// primary is down.
func decideTarget(primaryOK, secondaryOK bool) target {
	switch {
	case primaryOK:
		return targetPrimary
	case secondaryOK:
		return targetSecondary
	default:
		return targetNone
	}
}

// Failover health-checks the two targets, decides where the router CNAME
// should point and upserts it in both providers only when the current
// Cloudflare state differs. Each run is independent: there is no
// hysteresis and no persisted state.
func Failover(ctx context.Context, log zerolog.Logger, records provider.RecordClient, rrsets provider.RRSetClient, checker HealthChecker, cfg config.FailoverConfig) error {
	routerFQDN := dns.FQDN(cfg.Domain, cfg.RouterRecord)
	primaryFQDN := dns.FQDN(cfg.Domain, cfg.PrimaryTarget)
	secondaryFQDN := dns.FQDN(cfg.Domain, cfg.SecondaryTarget)

	zoneID, err := records.ZoneID(ctx, cfg.Domain)
	if err != nil {
		return err
	}

	log.Info().
		Str("domain", cfg.Domain).
		Str("router", routerFQDN).
		Str("primary", primaryFQDN).
		Str("secondary", secondaryFQDN).
		Msg("running failover check")

	primaryOK := checker.Healthy(ctx, cfg.PrimaryCheckURL)
	log.Info().Str("url", cfg.PrimaryCheckURL).Bool("healthy", primaryOK).Msg("primary health check")

	var secondaryOK bool
	if !primaryOK {
		secondaryOK = checker.Healthy(ctx, cfg.SecondaryCheckURL)
		log.Info().Str("url", cfg.SecondaryCheckURL).Bool("healthy", secondaryOK).Msg("secondary health check")
	}

	var desired string
	switch decideTarget(primaryOK, secondaryOK) {
	case targetPrimary:
		desired = primaryFQDN
	case targetSecondary:
		desired = secondaryFQDN
	default:
		log.Warn().Msg("both primary and secondary appear unhealthy; leaving router unchanged")
		return nil
	}

	current, err := records.GetRecord(ctx, zoneID, routerFQDN, "CNAME")
	if err != nil {
		return err
	}
	var currentTarget string
	if current != nil {
		currentTarget = current.Content
	}
	log.Info().Str("current", currentTarget).Str("desired", desired).Msg("router target")

	if currentTarget == desired {
		log.Info().Msg("router already points to desired target; no update needed")
		return nil
	}

	sub, err := dns.Subname(cfg.Domain, routerFQDN)
	if err != nil {
		return err
	}

	log.Info().Str("router", routerFQDN).Str("target", desired).Msg("updating router record in both providers")
	if err := records.UpsertRecord(ctx, zoneID, provider.RecordSpec{
		Name:    routerFQDN,
		Type:    "CNAME",
		Content: desired,
		TTL:     routerTTL,
	}); err != nil {
		return err
	}
	// deSEC stores CNAME targets in absolute form.
	if err := rrsets.UpsertRRSet(ctx, cfg.Domain, sub, "CNAME", routerTTL, []string{dns.AbsoluteName(desired)}); err != nil {
		return err
	}

	log.Info().Msg("failover update completed")
	return nil
}
