package dashboard

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	dbPath        string
	slowThreshold time.Duration
	migrate       bool

	indexAddrs    []string
	indexPassword string
	indexKey      string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// DefaultIndexKey is the Redis set holding the sampled catalog ids.
const DefaultIndexKey = "dashboard:catalog:tracks"

// WithSQLite sets the path of the catalog database.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.dbPath = path
	})
}

// WithSlowQuery logs queries slower than d at warn level.
func WithSlowQuery(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.slowThreshold = d
	})
}

// WithMigrate creates or updates the schema when the client opens.
func WithMigrate() Option {
	return optionFunc(func(c *clientConfig) {
		c.migrate = true
	})
}

// WithRedisIndex samples the catalog from a Redis set instead of the tracks
// table. An empty key selects DefaultIndexKey.
func WithRedisIndex(addr, password, key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexAddrs = []string{addr}
		c.indexPassword = password
		c.indexKey = key
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// SimilarOption tunes one similar-track search.
type SimilarOption func(*similarConfig)

type similarConfig struct {
	sampleSize int
	topK       int
	returnN    int
}

// SampleSize sets how many catalog tracks are drawn, target included.
func SampleSize(n int) SimilarOption {
	return func(c *similarConfig) { c.sampleSize = n }
}

// TopK sets how many of the best-scoring candidates are kept before picking.
func TopK(k int) SimilarOption {
	return func(c *similarConfig) { c.topK = k }
}

// ReturnN sets how many tracks are returned.
func ReturnN(n int) SimilarOption {
	return func(c *similarConfig) { c.returnN = n }
}
