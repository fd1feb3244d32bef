package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/calculator-demo/middleware/ratelimit"
	"github.com/example/calculator-demo/modules/api"
	"github.com/example/calculator-demo/modules/audit"
	"github.com/example/calculator-demo/modules/calculator"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Calculator Demo ===")

	// Configuration from environment
	httpPort := getEnvInt("HTTP_PORT", 3000)
	rateLimitEnabled := getEnvBool("RATE_LIMIT_ENABLED", false)
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisPassword := getEnv("REDIS_PASSWORD", "")
	perMinute := getEnvInt("RATE_LIMIT_PER_MINUTE", 120)

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	// Middleware must be registered first to intercept service registrations
	if rateLimitEnabled {
		rateLimitMiddleware, err := ratelimit.New(
			ratelimit.WithRedisAddr(redisAddr),
			ratelimit.WithRedisPassword(redisPassword),
			ratelimit.WithServiceLimit(calculator.ServiceCalculate, perMinute, time.Minute),
		)
		if err != nil {
			log.Fatalf("Failed to create rate limiting middleware: %v", err)
		}
		app.Register(rateLimitMiddleware)
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(calculator.NewModule(logger))   // Core domain (emits calculation events)
	app.Register(audit.NewModule(logger))        // Event consumer (counts calculations)
	app.Register(api.NewModule(httpPort, logger)) // Driving adapter (depends on calculator, audit)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(httpPort, rateLimitEnabled, perMinute)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(port int, rateLimited bool, perMinute int) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Calculator form: http://localhost:%d/", port)
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", port)
	log.Println("  POST   /api/v1/calculate   - Calculate {\"a\":10,\"b\":2,\"operation\":\"divide\"}")
	log.Println("  POST   /api/v1/validate    - Validate a raw operand {\"value\":\"3.14\"}")
	log.Println("  GET    /api/v1/operations  - List supported operations")
	log.Println("  GET    /api/v1/stats       - Calculation statistics")
	log.Println("  GET    /health             - Health check")
	log.Println("")
	if rateLimited {
		log.Printf("Rate limiting: %d calculations per minute per client", perMinute)
	} else {
		log.Println("Rate limiting: disabled (set RATE_LIMIT_ENABLED=true to enable)")
	}
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}

// getEnv returns the environment variable value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as a positive int or a default.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Ignoring invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// getEnvBool returns the environment variable as a bool or a default.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Ignoring invalid %s=%q, using %t", key, value, defaultValue)
		return defaultValue
	}
	return b
}
