package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/module"
	"faqrelay/internal/platform/config"
	"faqrelay/internal/platform/logger"
	"faqrelay/internal/platform/store"

	reviewmod "faqrelay/internal/services/review/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	_ = godotenv.Load()

	root := config.New()
	dbCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	st, err := store.Open(context.Background(), store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         dbCfg.MustString("DBURL"),
			MaxConns:    int32(dbCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: dbCfg.MayInt("SLOW_MS", 500),
			LogSQL:      dbCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Flags override env for one-off runs
	var (
		fEvery = flag.Duration("every", 0, "sweep cadence (0 = FAQRELAY_SWEEP_EVERY or 1m)")
		fTTL   = flag.Duration("ttl", 0, "pending review lifetime (0 = FAQRELAY_REVIEW_TTL or 60m)")
		fBatch = flag.Int("batch", 0, "rows expired per pass (0 = FAQRELAY_SWEEP_BATCH or 500)")
	)
	flag.Parse()

	if *fEvery > 0 {
		mustSetEnv("FAQRELAY_SWEEP_EVERY", fEvery.String())
	}
	if *fTTL > 0 {
		mustSetEnv("FAQRELAY_REVIEW_TTL", fTTL.String())
	}
	if *fBatch > 0 {
		mustSetEnv("FAQRELAY_SWEEP_BATCH", fmt.Sprintf("%d", *fBatch))
	}

	deps := modkit.Deps{
		Cfg: root,
		PG:  st.PG,
		Log: *l,
	}

	// The sweeper never delivers, it only flips pending rows to expired;
	// the review module tolerates the missing notifier for that path
	mod := reviewmod.New(deps, reviewmod.Options{})
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[reviewmod.Ports](mod)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ports.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Fatal().Err(err).Msg("review sweeper failed")
	}
	l.Info().Msg("review sweeper stopped")
}
