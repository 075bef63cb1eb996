package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"` // Format: redis://:password@localhost:6379/0
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`                      // Connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`                     // Pause between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`                   // Upper bound for all attempts together.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"htmlsaver:"`                 // Prepended to every document key.
	TTL            time.Duration `env:"REDIS_TTL" envDefault:"0"`                                 // Document expiration, 0 keeps documents forever.
}
