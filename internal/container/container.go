package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-events/config"
	"github.com/oksasatya/campus-events/internal/infrastructure/store"
	"github.com/oksasatya/campus-events/internal/metrics"
	"github.com/oksasatya/campus-events/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	repos       *store.Repositories
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client

	metricsRegistry  *prometheus.Registry
	metricsCollector *metrics.Collector
)

func SetConfig(c *config.Config)            { cfg = c }
func GetConfig() *config.Config             { return cfg }
func SetLogger(l *logrus.Logger)            { logger = l }
func GetLogger() *logrus.Logger             { return logger }
func SetRepositories(r *store.Repositories) { repos = r }
func GetRepositories() *store.Repositories  { return repos }
func SetRedis(r *redis.Client)              { redisClient = r }
func GetRedis() *redis.Client               { return redisClient }
func SetGCS(s *storage.Client)              { gcsClient = s }
func GetGCS() *storage.Client               { return gcsClient }
func SetJWT(m *helpers.JWTManager)          { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

// SetMetrics installs a registry and registers a fresh collector on it.
func SetMetrics(reg *prometheus.Registry) {
	metricsRegistry = reg
	metricsCollector = metrics.NewCollector(reg)
}

func GetMetricsRegistry() *prometheus.Registry { return metricsRegistry }

// GetMetrics returns the collector, or a no-op recorder before SetMetrics.
func GetMetrics() metrics.Recorder {
	if metricsCollector == nil {
		return metrics.Nop{}
	}
	return metricsCollector
}
