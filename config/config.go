package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
	DBPath   string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	JWTSecret string
	TokenTTL  time.Duration

	GeminiAPIKey string
	GeminiModel  string
	LLMEndpoint  string
	LLMAPIKey    string
	LLMModel     string

	PlantIDAPIKey   string
	PlantIDEndpoint string
	WeatherEndpoint string
	GeocodeEndpoint string

	MarketImportDomains []string
	CORSOrigins         []string
	SeedOnStart         bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] no .env file loaded: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	ttl, err := time.ParseDuration(get("TOKEN_TTL", "168h"))
	if err != nil || ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return AppConfig{
		Port:     get("PORT", "8080"),
		Env:      get("APP_ENV", "development"),
		LogLevel: get("LOG_LEVEL", "info"),
		DBPath:   get("DB_PATH", "kisan.db"),

		MongoURI:  get("MONGO_URI", ""),
		MongoDB:   get("MONGO_DB", "kisan"),
		RedisAddr: get("REDIS_ADDR", ""),

		JWTSecret: get("JWT_SECRET", ""),
		TokenTTL:  ttl,

		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.0-flash"),
		LLMEndpoint:  get("LLM_ENDPOINT", ""),
		LLMAPIKey:    get("LLM_API_KEY", ""),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),

		PlantIDAPIKey:   get("PLANT_ID_API_KEY", ""),
		PlantIDEndpoint: get("PLANT_ID_ENDPOINT", "https://plant.id/api/v3/health_assessment"),
		WeatherEndpoint: get("WEATHER_ENDPOINT", "https://api.open-meteo.com/v1/forecast"),
		GeocodeEndpoint: get("GEOCODE_ENDPOINT", "https://geocoding-api.open-meteo.com/v1/search"),

		MarketImportDomains: splitList(get("MARKET_IMPORT_DOMAINS", "")),
		CORSOrigins:         splitList(get("CORS_ORIGINS", "*")),
		SeedOnStart:         get("SEED_ON_START", "true") == "true",
	}
}

// MinSecretLen matches the HS256 key size.
const MinSecretLen = 32

var ErrWeakSecret = errors.New("JWT_SECRET must be set and at least 32 bytes")

func (c AppConfig) Validate() error {
	if len(c.JWTSecret) < MinSecretLen {
		return ErrWeakSecret
	}
	return nil
}

// String is safe to log: credentials are reported only as set or unset.
func (c AppConfig) String() string {
	mask := func(v string) string {
		if v == "" {
			return "unset"
		}
		return "set"
	}
	return fmt.Sprintf(
		"port=%s env=%s db=%s mongo=%s redis=%s jwt=%s ttl=%s gemini=%s(%s) llm=%s(%s) plantid=%s cors=%v seed=%t",
		c.Port, c.Env, c.DBPath, mask(c.MongoURI), mask(c.RedisAddr), mask(c.JWTSecret), c.TokenTTL,
		mask(c.GeminiAPIKey), c.GeminiModel, mask(c.LLMAPIKey), c.LLMModel, mask(c.PlantIDAPIKey),
		c.CORSOrigins, c.SeedOnStart,
	)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
