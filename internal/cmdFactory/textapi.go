package cmdfactory

import (
	"strconv"

	"github.com/elijahthis/extract-api/internal/metrics"
	"github.com/elijahthis/extract-api/internal/server"
	"github.com/elijahthis/extract-api/internal/shared"
)

type commonFactory struct {
	Limiter shared.RateLimiter
	Metrics *metrics.PrometheusMetrics
}

type textAPIFactory struct {
	*commonFactory
	Server *server.Service
}

func TextAPINew(cfg *Config) *textAPIFactory {
	cfg.LoadEnv()

	met := metrics.NewMetrics()
	go metrics.StartNewMetricsServer(":" + strconv.Itoa(cfg.TextMetricsPort))

	f := &textAPIFactory{
		commonFactory: &commonFactory{
			Metrics: met,
		},
	}

	f.Limiter = newRateLimiter(cfg)
	f.Server = server.NewTextService(server.Config{
		Addr:           cfg.TextAddr,
		Token:          cfg.Token,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxTextChars:   cfg.MaxTextChars,
		Limiter:        f.Limiter,
		Metrics:        met,
	})

	return f
}
