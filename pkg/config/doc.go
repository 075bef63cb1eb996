// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct parsing and
// github.com/joho/godotenv for .env files:
//
//	type StorageConfig struct {
//		Driver string `env:"STORAGE_DRIVER" envDefault:"local"`
//		Dir    string `env:"STORAGE_LOCAL_DIR" envDefault:"./data"`
//	}
//
//	if err := config.LoadEnv("deploy/.env"); err != nil {
//		log.Fatal(err)
//	}
//
//	var cfg StorageConfig
//	config.MustLoad(&cfg)
//
// Load reads the default .env file once, if present, then parses the
// environment into the struct. Each config type is parsed once and cached for
// the lifetime of the process. ResetCache clears the cache, which is mostly
// useful in tests.
//
// Errors are sentinel values comparable with errors.Is: ErrParsingConfig,
// ErrLoadingEnvFile and ErrNilPointer.
package config
