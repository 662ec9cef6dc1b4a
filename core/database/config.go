package database

// Config holds document-store connection settings.
type Config struct {
	URI                   string `yaml:"uri" envconfig:"MONGO_URI"`
	Database              string `yaml:"database" envconfig:"MONGO_DATABASE"`
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds" envconfig:"MONGO_CONNECT_TIMEOUT_SECONDS"`
	MaxPoolSize           uint64 `yaml:"max_pool_size" envconfig:"MONGO_MAX_POOL_SIZE"`
}
