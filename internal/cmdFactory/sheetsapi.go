package cmdfactory

import (
	"strconv"

	"github.com/elijahthis/extract-api/internal/metrics"
	"github.com/elijahthis/extract-api/internal/server"
)

type sheetsAPIFactory struct {
	*commonFactory
	Server *server.Service
}

func SheetsAPINew(cfg *Config) *sheetsAPIFactory {
	cfg.LoadEnv()

	met := metrics.NewMetrics()
	go metrics.StartNewMetricsServer(":" + strconv.Itoa(cfg.SheetsMetricsPort))

	f := &sheetsAPIFactory{
		commonFactory: &commonFactory{
			Metrics: met,
		},
	}

	f.Limiter = newRateLimiter(cfg)
	f.Server = server.NewSheetsService(server.Config{
		Addr:           cfg.SheetsAddr,
		Token:          cfg.Token,
		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        f.Limiter,
		Metrics:        met,
	})

	return f
}
