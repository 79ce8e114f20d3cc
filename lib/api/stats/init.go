package stats

import (
	"github.com/ether/etherdelta/lib"
	"github.com/ether/etherdelta/lib/settings"
	"github.com/gofiber/adaptor/v2"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Init(store *lib.InitStore) {
	checks := []Checker{
		StoreChecker{store.Store},
		ProducerChecker{store.Producer},
	}

	version, releaseID := settings.BuildInfo()
	store.C.Get("/health", Handler(
		version,
		releaseID,
		"etherdelta",
		checks,
	))

	if store.RetrievedSettings.EnableMetrics && store.Registry != nil {
		store.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		handler := promhttp.HandlerFor(
			store.Registry,
			promhttp.HandlerOpts{},
		)
		store.C.Get("/metrics", adaptor.HTTPHandler(handler))
	}
}
