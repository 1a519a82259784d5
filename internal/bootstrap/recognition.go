package bootstrap

import (
	"log/slog"

	"github.com/Bbmxzz/see2hear/internal/barcode"
	"github.com/Bbmxzz/see2hear/internal/colors"
	"github.com/Bbmxzz/see2hear/internal/media"
	"github.com/Bbmxzz/see2hear/internal/pricetag"
	"github.com/Bbmxzz/see2hear/internal/product"
	"github.com/Bbmxzz/see2hear/internal/scan"
	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/Bbmxzz/see2hear/internal/textscan"
	"github.com/Bbmxzz/see2hear/internal/translate"
	"go.uber.org/fx"
)

func ProvideOCRAdapter(logger *slog.Logger) *textscan.Adapter {
	return textscan.NewAdapter(textscan.NewTesseractRecognizer(), logger)
}

func ProvideColorExtractor(logger *slog.Logger) *colors.Extractor {
	return colors.NewExtractor(logger)
}

func ProvideBarcodeScanner(logger *slog.Logger) *barcode.Scanner {
	return barcode.NewScanner(logger)
}

func ProvideProductClient(cfg *Config) *product.Client {
	return product.NewClient(product.Config{BaseURL: cfg.ProductAPIURL})
}

func ProvideTranslateClient(cfg *Config) *translate.Client {
	return translate.NewClient(translate.Config{BaseURL: cfg.TranslateURL})
}

func ProvideDetectorClient(cfg *Config) *pricetag.DetectorClient {
	return pricetag.NewDetectorClient(pricetag.Config{Endpoint: cfg.DetectorURL})
}

func ProvidePriceTagPipeline(detector *pricetag.DetectorClient, ocr *textscan.Adapter, logger *slog.Logger) *pricetag.Pipeline {
	return pricetag.NewPipeline(detector, ocr, logger)
}

func ProvideTTSClient(cfg *Config) *speech.Client {
	return speech.NewClient(speech.Config{BaseURL: cfg.TTSAddress, Voice: cfg.TTSVoice})
}

func ProvideSpeechController(tts *speech.Client, logger *slog.Logger) *speech.Controller {
	return speech.NewController(tts, logger)
}

func ProvideScanManager(
	store *scan.Store,
	mediaStore *media.Store,
	ocr *textscan.Adapter,
	extractor *colors.Extractor,
	scanner *barcode.Scanner,
	products *product.Client,
	translator *translate.Client,
	priceTags *pricetag.Pipeline,
	controller *speech.Controller,
	logger *slog.Logger,
) *scan.Manager {
	return scan.NewManager(scan.ManagerConfig{
		Store:      store,
		Media:      mediaStore,
		OCR:        ocr,
		Extractor:  extractor,
		Scanner:    scanner,
		Products:   products,
		Translator: translator,
		PriceTags:  priceTags,
		Controller: controller,
		Logger:     logger,
	})
}

var RecognitionModule = fx.Options(
	fx.Provide(
		ProvideOCRAdapter,
		ProvideColorExtractor,
		ProvideBarcodeScanner,
		ProvideProductClient,
		ProvideTranslateClient,
		ProvideDetectorClient,
		ProvidePriceTagPipeline,
		ProvideTTSClient,
		ProvideSpeechController,
		ProvideScanManager,
	),
)
