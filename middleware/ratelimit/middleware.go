package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// CodeRateLimited is the error code returned in the reply body when a caller
// exceeds its limit.
const CodeRateLimited = "rate_limited"

// maxClientIDLength bounds the client ID used in Redis keys.
const maxClientIDLength = 128

// Middleware enforces per-client, per-service limits on request-reply
// services. Rejected requests get a JSON reply carrying an error and a code,
// in the same shape the calculator services use for domain failures.
type Middleware struct {
	config  Config
	client  *redis.Client
	limiter Allower
	logger  *slog.Logger
}

var _ mono.Module = (*Middleware)(nil)
var _ mono.MiddlewareModule = (*Middleware)(nil)

// LimitExceededReply is the reply body sent instead of calling the service.
type LimitExceededReply struct {
	Error     string    `json:"error"`
	Code      string    `json:"code"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

// New creates the middleware. The Redis connection is opened in Start.
func New(opts ...Option) (*Middleware, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.ClientIDHeader == "" {
		return nil, fmt.Errorf("client ID header must not be empty")
	}

	return &Middleware{
		config: config,
		logger: slog.Default(),
	}, nil
}

func (m *Middleware) Name() string {
	return "rate-limit"
}

// Start connects to Redis unless a limiter was already supplied.
func (m *Middleware) Start(ctx context.Context) error {
	if m.limiter != nil {
		return nil
	}

	m.client = redis.NewClient(&redis.Options{
		Addr:         m.config.RedisAddr,
		Password:     m.config.RedisPassword,
		DB:           m.config.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := m.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", m.config.RedisAddr, err)
	}

	m.limiter = NewRedisLimiter(m.client, m.config.KeyPrefix)
	m.logger.Info("Rate limiting middleware started",
		"redis", m.config.RedisAddr,
		"default_limit", m.config.DefaultLimit,
		"service_limits", len(m.config.ServiceLimits))
	return nil
}

func (m *Middleware) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			m.logger.Error("Failed to close Redis connection", "error", err)
			return err
		}
	}
	m.logger.Info("Rate limiting middleware stopped")
	return nil
}

func (m *Middleware) OnModuleLifecycle(
	_ context.Context,
	event types.ModuleLifecycleEvent,
) types.ModuleLifecycleEvent {
	return event
}

// OnServiceRegistration wraps limited request-reply handlers.
func (m *Middleware) OnServiceRegistration(
	_ context.Context,
	reg types.ServiceRegistration,
) types.ServiceRegistration {
	if reg.Type != types.ServiceTypeRequestReply || reg.RequestHandler == nil {
		return reg
	}
	limit, ok := m.config.limitFor(reg.Name)
	if !ok {
		return reg
	}

	m.logger.Debug("Wrapping service with rate limiting",
		"service", reg.Name,
		"requests", limit.Requests,
		"window", limit.Window)

	reg.RequestHandler = m.wrap(reg.Name, limit, reg.RequestHandler)
	return reg
}

func (m *Middleware) wrap(service string, limit Limit, next types.RequestReplyHandler) types.RequestReplyHandler {
	return func(ctx context.Context, req *types.Msg) ([]byte, error) {
		// Start must have run; before that every request passes.
		if m.limiter == nil {
			return next(ctx, req)
		}

		clientID := m.clientID(req)
		decision, err := m.limiter.Allow(ctx, service+":"+clientID, limit)
		if err != nil {
			// Fail open when Redis is unavailable
			m.logger.Error("Rate limit check failed",
				"service", service,
				"client_id", clientID,
				"error", err)
			return next(ctx, req)
		}

		if decision.Allowed {
			return next(ctx, req)
		}

		m.logger.Warn("Rate limit exceeded",
			"service", service,
			"client_id", clientID,
			"limit", decision.Limit,
			"reset_at", decision.ResetAt)

		return json.Marshal(LimitExceededReply{
			Error:     fmt.Sprintf("rate limit exceeded for service %s", service),
			Code:      CodeRateLimited,
			Limit:     decision.Limit,
			Remaining: decision.Remaining,
			ResetAt:   decision.ResetAt,
		})
	}
}

func (m *Middleware) OnConfigurationChange(
	_ context.Context,
	event types.ConfigurationEvent,
) types.ConfigurationEvent {
	return event
}

func (m *Middleware) OnOutgoingMessage(
	octx types.OutgoingMessageContext,
) types.OutgoingMessageContext {
	return octx
}

func (m *Middleware) OnEventConsumerRegistration(
	_ context.Context,
	entry types.EventConsumerEntry,
) types.EventConsumerEntry {
	return entry
}

func (m *Middleware) OnEventStreamConsumerRegistration(
	_ context.Context,
	entry types.EventStreamConsumerEntry,
) types.EventStreamConsumerEntry {
	return entry
}

// clientID reads the caller identity from the configured header.
func (m *Middleware) clientID(req *types.Msg) string {
	if req == nil || req.Header == nil {
		return m.config.FallbackClientID
	}
	values := req.Header[m.config.ClientIDHeader]
	if len(values) == 0 || values[0] == "" {
		return m.config.FallbackClientID
	}
	id := values[0]
	if len(id) > maxClientIDLength {
		id = id[:maxClientIDLength]
	}
	return id
}
