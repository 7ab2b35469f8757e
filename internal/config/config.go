package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries every setting the services need. It is built once in main and
// passed into constructors so nothing reads the environment at call time.
type Config struct {
	APIPort  string
	LogLevel string

	ElasticsearchURL string
	LogIndex         string

	CouchbaseURL      string
	CouchbaseUser     string
	CouchbasePassword string
	CouchbaseBucket   string

	RedisAddr string

	// GoogleMapsAPIKey empty means the deterministic demo places provider.
	GoogleMapsAPIKey string

	// OpenAIAPIKey empty means the deterministic demo LLM client.
	OpenAIAPIKey string
	OpenAIModel  string

	EnableSystemMetrics bool
}

// Load reads .env when present and builds the Config from the environment.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info().Msg("No .env file found, assuming environment variables are set")
	}

	return &Config{
		APIPort:  getEnv("API_PORT", "8080"),
		LogLevel: getEnv("API_LOG_LEVEL", "info"),

		ElasticsearchURL: os.Getenv("ELASTICSEARCH_URL"),
		LogIndex:         getEnv("LOG_INDEX", "logs"),

		CouchbaseURL:      getEnv("COUCHBASE_URL", "couchbase://medatlas-db"),
		CouchbaseUser:     getEnv("COUCHBASE_USERNAME", "medatlas_user"),
		CouchbasePassword: getEnv("COUCHBASE_PASSWORD", "password"),
		CouchbaseBucket:   getEnv("COUCHBASE_BUCKET", "medatlas"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		EnableSystemMetrics: os.Getenv("ENABLE_SYSTEM_METRICS") == "true",
	}
}

// DemoPlaces reports whether the places gateway should run in demo mode.
func (c *Config) DemoPlaces() bool {
	return c.GoogleMapsAPIKey == ""
}

// DemoLLM reports whether the AI gateway should run in demo mode.
func (c *Config) DemoLLM() bool {
	return c.OpenAIAPIKey == ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
