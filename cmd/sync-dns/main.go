// sync-dns pushes the records of a YAML zone config into Cloudflare and
// deSEC.
//
// Usage:
//
//	sync-dns --config config/zone.example.com.yml
//
// Requires CF_API_TOKEN and DESEC_API_TOKEN in the environment.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"zonesync/internal/app"
	"zonesync/internal/cloudflare"
	"zonesync/internal/config"
	"zonesync/internal/desec"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to zone config YAML")
		dryRun     = flag.Bool("dry-run", false, "print planned upserts without calling provider APIs")
	)
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(log, *configPath, *dryRun); err != nil {
		log.Error().Err(err).Msg("sync failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, configPath string, dryRun bool) error {
	if configPath == "" {
		return fmt.Errorf("missing required flag --config")
	}

	cfg, err := config.LoadZone(configPath)
	if err != nil {
		return err
	}
	records, err := config.BuildRecords(cfg)
	if err != nil {
		return err
	}
	log.Info().Str("domain", cfg.Domain).Str("config", configPath).Msg("loaded zone config")

	if dryRun {
		app.PrintPlan(log, cfg.Domain, records)
		return nil
	}

	cfToken, err := config.RequiredEnv("CF_API_TOKEN")
	if err != nil {
		return err
	}
	desecToken, err := config.RequiredEnv("DESEC_API_TOKEN")
	if err != nil {
		return err
	}

	cf, err := cloudflare.New(cloudflare.Options{APIToken: cfToken})
	if err != nil {
		return err
	}
	ds, err := desec.New(desec.Options{APIToken: desecToken})
	if err != nil {
		return err
	}

	return app.Sync(context.Background(), log, cf, ds, cfg.Domain, records)
}
