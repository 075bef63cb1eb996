package main

import (
	"github.com/dmitrymomot/htmlsaver/pkg/httpserver"
	"github.com/dmitrymomot/htmlsaver/pkg/saver"
)

// Storage backends selectable through STORAGE_BACKEND.
const (
	backendLocal    = "local"
	backendS3       = "s3"
	backendRedis    = "redis"
	backendPostgres = "postgres"
	backendMongo    = "mongo"
)

type appConfig struct {
	AppName          string `env:"APP_NAME" envDefault:"htmlsaver"`          // Service name attached to every log record.
	Env              string `env:"APP_ENV" envDefault:"development"`         // development, staging or production.
	LogLevel         string `env:"LOG_LEVEL"`                                // Overrides the environment's default level when set.
	LogFormat        string `env:"LOG_FORMAT"`                               // json or text, overrides the environment's default format.
	LogAddSource     bool   `env:"LOG_ADD_SOURCE"`                           // Adds the source position to every record.
	Backend          string `env:"STORAGE_BACKEND" envDefault:"local"`       // local, s3, redis, postgres or mongo.
	LocalDir         string `env:"LOCAL_STORAGE_DIR" envDefault:"./data"`    // Root directory of the local backend.
	RulesFile        string `env:"SANITIZER_RULES_FILE"`                     // Optional YAML sanitizer pipeline.
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"htmlsaver"` // Prometheus namespace.

	Saver saver.Config
	HTTP  httpserver.Config
}
