// Package api provides the HTTP API for the application
package api

import (
	"context"

	"faqrelay/internal/platform/config"
	"faqrelay/internal/platform/logger"
	phttp "faqrelay/internal/platform/net/http"
	"faqrelay/internal/platform/store"

	"faqrelay/internal/modkit"
	"faqrelay/internal/modkit/httpkit"
	"faqrelay/internal/modkit/module"
	"faqrelay/internal/modkit/swaggerkit"

	perr "faqrelay/internal/platform/errors"

	corpusapi "faqrelay/internal/services/api/corpus/module"
	eventsapi "faqrelay/internal/services/api/events/module"
	metamod "faqrelay/internal/services/api/meta/module"
	reviewsapi "faqrelay/internal/services/api/reviews/module"

	// pipeline modules (own the ports the API modules depend on)
	corpusmod "faqrelay/internal/services/corpus/module"
	decmod "faqrelay/internal/services/decisionlog/module"
	intakemod "faqrelay/internal/services/intake/module"
	reviewmod "faqrelay/internal/services/review/module"
	rotationmod "faqrelay/internal/services/rotation/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		KV:  opt.Store.KV,
		Log: *opt.Logger,
	}

	// Pipeline modules first; the API modules borrow their ports.
	corpus := corpusmod.New(deps, corpusmod.Options{})
	decisions := decmod.New(deps, decmod.Options{})
	rotation := rotationmod.New(deps)
	review := reviewmod.New(deps, reviewmod.Options{})

	corpusPorts := module.MustPortsOf[corpusmod.Ports](corpus)
	reviewPorts := module.MustPortsOf[reviewmod.Ports](review)

	intake := intakemod.New(deps, intakemod.Options{}, intakemod.Collaborators{
		Corpus:    corpusPorts.Corpus,
		Selector:  module.MustPortsOf[rotationmod.Ports](rotation).Selector,
		Reviews:   reviewPorts.Intake,
		Decisions: module.MustPortsOf[decmod.Ports](decisions).Recorder,
	})

	// Build the first index before traffic arrives. A failed load keeps
	// the empty classifier; every message then escalates, nothing breaks
	if _, err := corpusPorts.Corpus.Reload(context.Background()); err != nil {
		opt.Logger.Error().Err(err).Msg("initial corpus load failed, serving empty index")
	}

	mods := []module.Module{
		corpus,
		decisions,
		rotation,
		review,
		intake,
	}

	apiMods := []module.Module{
		metamod.New(deps),
		corpusapi.New(deps, modkit.WithPorts(corpusapi.Ports{
			Corpus: corpusPorts.Corpus,
		})),
		reviewsapi.New(deps, modkit.WithPorts(reviewsapi.Ports{
			Reviews: reviewPorts.Reviews,
			Actions: reviewPorts.Actions,
		})),
		eventsapi.New(deps, modkit.WithPorts(eventsapi.Ports{
			Intake: module.MustPortsOf[intakemod.Ports](intake).Intake,
		})),
	}

	// shared-secret bearer auth for the webhook and admin surface,
	// absent token leaves the API open (local development)
	secret := opt.Config.Prefix("FAQRELAY_").MayString("API_TOKEN", "")
	authed := func(api httpkit.Router, mount func(httpkit.Router)) {
		if secret == "" {
			mount(api)
			return
		}
		port := httpkit.NewPortFunc(func(token string) (string, error) {
			if token != secret {
				return "", perr.Unauthorizedf("invalid token")
			}
			return "gateway", nil
		})
		httpkit.Protected(api, port, mount)
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// port-only modules; registered so API modules can be looked up
			module.Register(m.Name(), m.Ports())
		}

		for _, m := range apiMods {
			module.Register(m.Name(), m.Ports())
			if m.Name() == "meta" {
				m.MountRoutes(api)
				continue
			}
			mod := m
			authed(api, func(gr httpkit.Router) { mod.MountRoutes(gr) })
		}
	})
}
