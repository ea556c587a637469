//go:build wireinject
// +build wireinject

package di

import (
	"PawMatch/pkg/config"
	"PawMatch/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation in wire_gen.go.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideDataStore,
		ProvideClickHouseClient,
		ProvideBookingHistory,
		ProvideKafkaProducer,
		ProvideNotifier,
		ProvideCache,
		ProvideInsight,

		// Use cases
		ProvideExtractor,
		ProvideTrustScorer,
		ProvideAvailability,
		ProvideSlotRecommender,
		ProvideBookingLifecycle,
		ProvideOrchestrator,

		// Transport
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
