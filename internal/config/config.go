package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CAES_ENV (or .env by default),
// then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("CAES_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

// DatabaseURL returns the Postgres connection string. Empty means the
// server keeps graphs in memory.
func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func MigrationsPath() string {
	p := os.Getenv("MIGRATIONS_PATH")
	if p == "" {
		return "migrations"
	}
	return p
}

// APIKey returns the bearer key guarding /v1. Empty disables auth.
func APIKey() string {
	return os.Getenv("API_KEY")
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// CORSAllowedOrigins returns the comma-separated CORS_ALLOWED_ORIGINS list.
// Defaults to localhost on any port.
func CORSAllowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"http://localhost:*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}

// DefaultProofStandard names the standard used by audiences that do not
// pick one. Defaults to "scintilla".
func DefaultProofStandard() string {
	s := os.Getenv("DEFAULT_PROOF_STANDARD")
	if s == "" {
		return "scintilla"
	}
	return s
}

// EvalParallelism bounds how many targets of one request are evaluated
// at once. Defaults to 4.
func EvalParallelism() int {
	n, err := strconv.Atoi(os.Getenv("EVAL_PARALLELISM"))
	if err != nil || n <= 0 {
		return 4
	}
	return n
}

// EvalTimeout bounds how long one evaluation request may run. Defaults to
// 30s; zero or an unparsable value keeps the default.
func EvalTimeout() time.Duration {
	d, err := time.ParseDuration(os.Getenv("EVAL_TIMEOUT"))
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Threshold accessors for the clear-and-convincing and
// beyond-reasonable-doubt standards.

func ClearAndConvincingAlpha() float64 { return floatEnv("CCE_ALPHA", 0.5) }
func ClearAndConvincingBeta() float64  { return floatEnv("CCE_BETA", 0.3) }
func ReasonableDoubtAlpha() float64    { return floatEnv("BRD_ALPHA", 0.7) }
func ReasonableDoubtBeta() float64     { return floatEnv("BRD_BETA", 0.5) }
func ReasonableDoubtGamma() float64    { return floatEnv("BRD_GAMMA", 0.2) }

func floatEnv(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v < 0 || v > 1 {
		return def
	}
	return v
}
