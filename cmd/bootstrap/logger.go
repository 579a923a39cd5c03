package bootstrap

import (
	"log/slog"

	"meeting-room-booking/internal/handler/middleware"
	"meeting-room-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
	),
)

func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewSlogLogger(cfg.Log)
	logger.Info("logger initialized", "level", cfg.Log.Level, "timezone", cfg.Log.TimeZone)
	return logger
}
