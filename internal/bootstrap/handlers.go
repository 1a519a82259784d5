package bootstrap

import (
	"log/slog"

	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/health"
	"github.com/Bbmxzz/see2hear/internal/listen"
	"github.com/Bbmxzz/see2hear/internal/media"
	"github.com/Bbmxzz/see2hear/internal/pricetag"
	"github.com/Bbmxzz/see2hear/internal/scan"
	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/Bbmxzz/see2hear/internal/translate"
	"github.com/Bbmxzz/see2hear/internal/user"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

type HandlerParams struct {
	fx.In

	MediaHandler     *media.Handler
	FeatureHandler   *feature.Handler
	ScanHandler      *scan.Handler
	SpeechHandler    *speech.Handler
	ListenBridge     *listen.Bridge
	TranslateHandler *translate.Handler
	UserHandler      *user.Handler
	HealthHandler    *health.Handler
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	api := e.Group("/v1")

	params.MediaHandler.RegisterRoutes(api.Group("/media"))
	params.FeatureHandler.RegisterRoutes(api)
	params.ScanHandler.RegisterRoutes(api.Group("/scans"))

	speechGroup := api.Group("/speech")
	params.SpeechHandler.RegisterRoutes(speechGroup)
	params.ListenBridge.RegisterRoutes(speechGroup)

	params.TranslateHandler.RegisterRoutes(api.Group("/translate"))

	params.UserHandler.RegisterRoutes(e.Group(""))
	params.HealthHandler.RegisterRoutes(e)
}

func ProvideMediaHandler(store *media.Store, logger *slog.Logger) *media.Handler {
	return media.NewHandler(store, logger.With("handler", "media"))
}

func ProvideFeatureHandler(store *media.Store, logger *slog.Logger) *feature.Handler {
	return feature.NewHandler(store, logger.With("handler", "feature"))
}

func ProvideScanHandler(manager *scan.Manager, logger *slog.Logger) *scan.Handler {
	return scan.NewHandler(manager, logger.With("handler", "scan"))
}

func ProvideSpeechHandler(controller *speech.Controller, logger *slog.Logger) *speech.Handler {
	return speech.NewHandler(controller, logger.With("handler", "speech"))
}

func ProvideListenBridge(controller *speech.Controller, logger *slog.Logger) *listen.Bridge {
	return listen.NewBridge(controller, logger)
}

func ProvideTranslateHandler(client *translate.Client, logger *slog.Logger) *translate.Handler {
	return translate.NewHandler(client, logger.With("handler", "translate"))
}

func ProvideUserHandler(store *user.Store, tokens user.TokenStore, logger *slog.Logger) *user.Handler {
	return user.NewHandler(store, tokens, logger.With("handler", "user"))
}

func ProvideHealthHandler(
	db *gorm.DB,
	redisClient *redis.Client,
	tts *speech.Client,
	translator *translate.Client,
	detector *pricetag.DetectorClient,
	scans *scan.Manager,
) *health.Handler {
	return health.NewHandler(db, redisClient, tts, translator, detector, scans, version)
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideMediaHandler,
		ProvideFeatureHandler,
		ProvideScanHandler,
		ProvideSpeechHandler,
		ProvideListenBridge,
		ProvideTranslateHandler,
		ProvideUserHandler,
		ProvideHealthHandler,
	),
	fx.Invoke(RegisterRoutes),
)
