package ratelimit

import (
	"time"
)

// Config holds the rate limiting configuration.
type Config struct {
	// RedisAddr is the Redis server address (e.g., "localhost:6379")
	RedisAddr string

	// RedisPassword is the Redis authentication password (optional)
	RedisPassword string

	// RedisDB is the Redis database number
	RedisDB int

	// DefaultLimit applies to request-reply services without their own limit.
	// Zero leaves such services unlimited.
	DefaultLimit  int
	DefaultWindow time.Duration

	// ServiceLimits maps service names (as registered, e.g. "calculate") to limits
	ServiceLimits map[string]Limit

	// KeyPrefix is prepended to every Redis key
	KeyPrefix string

	// ClientIDHeader is the message header carrying the caller identity
	ClientIDHeader string

	// FallbackClientID is used when the header is missing or empty
	FallbackClientID string
}

// Limit is a number of requests allowed per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		RedisAddr:        "localhost:6379",
		DefaultLimit:     0,
		DefaultWindow:    time.Minute,
		ServiceLimits:    make(map[string]Limit),
		KeyPrefix:        "calculator:ratelimit:",
		ClientIDHeader:   "X-Client-ID",
		FallbackClientID: "anonymous",
	}
}

// Option modifies Config.
type Option func(*Config)

// WithRedisAddr sets the Redis server address.
func WithRedisAddr(addr string) Option {
	return func(c *Config) {
		c.RedisAddr = addr
	}
}

// WithRedisPassword sets the Redis password.
func WithRedisPassword(password string) Option {
	return func(c *Config) {
		c.RedisPassword = password
	}
}

// WithRedisDB sets the Redis database number.
func WithRedisDB(db int) Option {
	return func(c *Config) {
		c.RedisDB = db
	}
}

// WithDefaultLimit limits every request-reply service without a specific limit.
func WithDefaultLimit(requests int, window time.Duration) Option {
	return func(c *Config) {
		c.DefaultLimit = requests
		c.DefaultWindow = window
	}
}

// WithServiceLimit sets the limit for one service.
func WithServiceLimit(service string, requests int, window time.Duration) Option {
	return func(c *Config) {
		c.ServiceLimits[service] = Limit{Requests: requests, Window: window}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *Config) {
		c.KeyPrefix = prefix
	}
}

// WithClientIDHeader sets the header used to identify callers.
func WithClientIDHeader(header string) Option {
	return func(c *Config) {
		c.ClientIDHeader = header
	}
}

// WithFallbackClientID sets the identity used for callers without the header.
func WithFallbackClientID(id string) Option {
	return func(c *Config) {
		c.FallbackClientID = id
	}
}

// limitFor returns the limit for a service and whether the service is limited at all.
func (c Config) limitFor(service string) (Limit, bool) {
	if l, ok := c.ServiceLimits[service]; ok {
		return l, l.Requests > 0 && l.Window > 0
	}
	if c.DefaultLimit > 0 && c.DefaultWindow > 0 {
		return Limit{Requests: c.DefaultLimit, Window: c.DefaultWindow}, true
	}
	return Limit{}, false
}
