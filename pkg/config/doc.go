// Package config loads typed configuration from environment variables.
//
// Structs are described with github.com/caarlos0/env/v11 tags and parsed by
// Load, which caches one value per type for the life of the process. A .env
// file in the working directory is read through github.com/joho/godotenv the
// first time Load runs; LoadEnv reads other files instead.
//
// # Usage
//
//	type appConfig struct {
//		Env      string        `env:"OTPSCAN_ENV" envDefault:"development"`
//		QRSize   int           `env:"OTPSCAN_QR_SIZE" envDefault:"256"`
//		Interval time.Duration `env:"OTPSCAN_REFRESH_INTERVAL" envDefault:"1s"`
//	}
//
//	func (c *appConfig) Validate() error { ... }
//
//	var cfg appConfig
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig and Validate failures wrap
// ErrInvalidConfig. Both are cached with the type, so the program fails the
// same way on every call. Reset clears the cache in tests.
package config
