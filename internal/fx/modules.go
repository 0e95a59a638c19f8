package fx

import (
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"dota-analysis/internal/config"
	"dota-analysis/internal/database"
	"dota-analysis/internal/logger"
	"dota-analysis/internal/repository"
	"dota-analysis/internal/server"
	"dota-analysis/internal/service"
	"dota-analysis/internal/sexagenary"
)

// ProvideResolver wires the precise lunar-calendar resolver with the
// approximate fallback, logging every degradation.
func ProvideResolver(log zerolog.Logger) sexagenary.Resolver {
	return sexagenary.NewFallback(func(date time.Time, err error) {
		log.Warn().
			Err(err).
			Str("date", date.Format("2006-01-02")).
			Msg("falling back to approximate sexagenary calendar")
	})
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideResolver),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewImportBatchRepository),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewAnalysisService),
	// server
	fx.Provide(server.New),
)
