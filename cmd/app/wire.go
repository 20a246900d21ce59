//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/outfit-advisor/internal/bootstrap"
	"github.com/yanqian/outfit-advisor/internal/domain/analyzer"
	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	httpiface "github.com/yanqian/outfit-advisor/internal/interface/http"
	"github.com/yanqian/outfit-advisor/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAnalyzerConfig,
		provideOutfitConfig,
		providePageFetcher,
		provideDocumentReader,
		provideImageDecoder,
		provideAnalysisCache,
		providePhotoBackend,
		provideImageStorage,
		providePhotoStore,
		providePhotoReader,
		providePostgresPool,
		provideValkeyClient,
		provideWardrobeRepository,
		providePreferenceBackend,
		providePreferenceRepository,
		provideSessionStore,
		provideItemAnalyzer,
		provideWardrobeReader,
		analyzer.NewService,
		wardrobe.NewService,
		outfit.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
