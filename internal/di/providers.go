package di

import (
	"fmt"

	domrepo "PawMatch/internal/domain/repository"
	domsvc "PawMatch/internal/domain/service"
	"PawMatch/internal/handler/api"
	internalrepo "PawMatch/internal/repository"
	"PawMatch/internal/services/features"
	"PawMatch/internal/services/insight"
	"PawMatch/internal/usecase"
	"PawMatch/pkg/cache"
	pkgch "PawMatch/pkg/clickhouse"
	"PawMatch/pkg/config"
	pkgkafka "PawMatch/pkg/kafka"
	"PawMatch/pkg/logger"
	"PawMatch/pkg/metrics"
	"PawMatch/pkg/server"
)

// ProvideLogger builds the root structured logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideDataStore opens the marketplace Postgres database.
func ProvideDataStore(cfg *config.Config, l *logger.Logger) (domrepo.DataStore, error) {
	store, err := internalrepo.NewPostgresStore(internalrepo.PostgresConfig{
		DSN:          cfg.PostgresDSN(),
		MaxOpenConns: 20,
		MaxIdleConns: 5,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("postgres store: %w", err)
	}
	return store, nil
}

// ProvideClickHouseClient creates the ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideBookingHistory wraps ClickHouse as the outcome log.
func ProvideBookingHistory(client *pkgch.Client, l *logger.Logger) (domrepo.BookingHistory, error) {
	return internalrepo.NewClickHouseHistory(client, l)
}

// ProvideKafkaProducer creates the notification producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideNotifier wraps the producer for booking events.
func ProvideNotifier(producer *pkgkafka.Producer, cfg *config.Config, l *logger.Logger) domrepo.Notifier {
	return internalrepo.NewKafkaNotifier(producer, cfg.Kafka.Topic, l)
}

// ProvideCache selects Redis when configured, in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return cache.NewMemoryCache(), nil
}

// ProvideInsight selects the external model client or the disabled stub.
func ProvideInsight(cfg *config.Config) domsvc.InsightProvider {
	if cfg.Insight.Enabled {
		return insight.NewHTTPProvider(cfg.Insight.BaseURL, cfg.Insight.Timeout)
	}
	return insight.NewDisabled()
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideExtractor builds the feature extractor and routes its sentiment
// fallbacks into the metrics recorder.
func ProvideExtractor(provider domsvc.InsightProvider, m domrepo.Metrics) *features.Extractor {
	ex := features.NewExtractor(provider)
	ex.OnFallback(func() { m.RecordFallback("sentiment") })
	return ex
}

// ProvideTrustScorer creates the trust scoring use case.
func ProvideTrustScorer(store domrepo.DataStore, provider domsvc.InsightProvider, ex *features.Extractor, m domrepo.Metrics, l *logger.Logger) *usecase.TrustScorer {
	return usecase.NewTrustScorer(store, provider, ex, m, l)
}

// ProvideAvailability creates the availability index.
func ProvideAvailability(store domrepo.DataStore, c cache.Cache, cfg *config.Config, l *logger.Logger) *usecase.AvailabilityIndex {
	return usecase.NewAvailabilityIndex(store, c, cfg.Cache.AvailabilityTTL, cfg.Booking.DefaultOpenHour, cfg.Booking.DefaultCloseHour, l)
}

// ProvideSlotRecommender creates the time-slot recommender.
func ProvideSlotRecommender(store domrepo.DataStore, history domrepo.BookingHistory, provider domsvc.InsightProvider, m domrepo.Metrics, l *logger.Logger) *usecase.TimeSlotRecommender {
	return usecase.NewTimeSlotRecommender(store, history, provider, m, l)
}

// ProvideBookingLifecycle creates the booking lifecycle use case.
func ProvideBookingLifecycle(store domrepo.DataStore, avail *usecase.AvailabilityIndex, notifier domrepo.Notifier, history domrepo.BookingHistory, m domrepo.Metrics, cfg *config.Config, l *logger.Logger) *usecase.BookingLifecycle {
	return usecase.NewBookingLifecycle(store, avail, notifier, history, m, cfg.Booking.AIDiscount, l)
}

// ProvideOrchestrator creates the recommendation orchestrator.
func ProvideOrchestrator(scorer *usecase.TrustScorer, slots *usecase.TimeSlotRecommender, l *logger.Logger) *usecase.RecommendationOrchestrator {
	return usecase.NewRecommendationOrchestrator(scorer, slots, l)
}

// ProvideHandler builds the HTTP handler.
func ProvideHandler(
	scorer *usecase.TrustScorer,
	avail *usecase.AvailabilityIndex,
	slots *usecase.TimeSlotRecommender,
	orch *usecase.RecommendationOrchestrator,
	lifecycle *usecase.BookingLifecycle,
	store domrepo.DataStore,
	history domrepo.BookingHistory,
	c cache.Cache,
	cfg *config.Config,
	l *logger.Logger,
) *api.Handler {
	return api.NewHandler(api.Deps{
		Scorer:       scorer,
		Availability: avail,
		Slots:        slots,
		Orchestrator: orch,
		Lifecycle:    lifecycle,
		Store:        store,
		History:      history,
		Cache:        c,
		TrustTTL:     cfg.Cache.TrustTTL,
	}, l)
}

// ProvideApp assembles the application server.
func ProvideApp(
	cfg *config.Config,
	handler *api.Handler,
	store domrepo.DataStore,
	history domrepo.BookingHistory,
	notifier domrepo.Notifier,
	c cache.Cache,
	l *logger.Logger,
) *server.App {
	return server.New(cfg, handler, store, history, notifier, c, l)
}
