// failover health-checks two CDN fronts and points a router CNAME at the
// healthy one, updating Cloudflare and deSEC only when the target changes.
//
// Usage:
//
//	failover --config config/failover.example.com.yml
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
	"zonesync/internal/healthcheck"
)

func main() {
	configPath := flag.String("config", "", "path to failover config YAML")
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := run(log, *configPath); err != nil {
		log.Error().Err(err).Msg("failover failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger, configPath string) error {
	if configPath == "" {
		return fmt.Errorf("missing required flag --config")
	}

	cfg, err := config.LoadFailover(configPath)
	if err != nil {
		return err
	}
	log.Info().Str("domain", cfg.Domain).Str("config", configPath).Msg("loaded failover config")

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
	checker := healthcheck.New(cfg.ExpectedStatus, cfg.Timeout())

	return app.Failover(context.Background(), log, cf, ds, checker, cfg)
}
