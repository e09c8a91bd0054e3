package store

import "time"

// Config selects and configures a driver. Nested blocks are read with their
// own prefixes, e.g. MODKIT_STORE_REDIS_URL.
type Config struct {
	// Driver is one of memory, file, badger, redis, postgres, mongo, s3.
	Driver string `env:"DRIVER" envDefault:"file"`
	// KeyPrefix namespaces keys in shared redis and s3 deployments.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"modkit/"`
	FilePath  string `env:"FILE_PATH" envDefault:"modkit.yaml"`
	BadgerDir string `env:"BADGER_DIR" envDefault:".modkit"`

	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Postgres PostgresConfig `envPrefix:"PG_"`
	Mongo    MongoConfig    `envPrefix:"MONGO_"`
	S3       S3Config       `envPrefix:"S3_"`
}

// RedisConfig is read from MODKIT_STORE_REDIS_*.
type RedisConfig struct {
	ConnectionURL  string        `env:"URL" envDefault:"redis://localhost:6379/0"` // ConnectionURL is in the format "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
}

// PostgresConfig is read from MODKIT_STORE_PG_*.
type PostgresConfig struct {
	ConnectionString string        `env:"CONN_URL"`
	MaxOpenConns     int32         `env:"MAX_OPEN_CONNS" envDefault:"4"`
	MaxIdleConns     int32         `env:"MAX_IDLE_CONNS" envDefault:"1"`
	RetryAttempts    int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval    time.Duration `env:"RETRY_INTERVAL" envDefault:"5s"`
	MigrationsTable  string        `env:"MIGRATIONS_TABLE" envDefault:"modkit_schema_migrations"`
}

// MongoConfig is read from MODKIT_STORE_MONGO_*.
type MongoConfig struct {
	ConnectionURL  string        `env:"URL" envDefault:"mongodb://localhost:27017"`
	Database       string        `env:"DATABASE" envDefault:"modkit"`
	Collection     string        `env:"COLLECTION" envDefault:"settings"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
	RetryAttempts  int           `env:"RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"RETRY_INTERVAL" envDefault:"5s"`
}

// S3Config is read from MODKIT_STORE_S3_*.
type S3Config struct {
	Bucket         string `env:"BUCKET"`
	Region         string `env:"REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"ACCESS_KEY_ID"`
	SecretKey      string `env:"SECRET_KEY"`
	Endpoint       string `env:"ENDPOINT"`         // Endpoint is optional, for S3-compatible services.
	ForcePathStyle bool   `env:"FORCE_PATH_STYLE"` // ForcePathStyle is needed by MinIO and similar services.
}
