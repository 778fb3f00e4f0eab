package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// StateBackend selects where visitor preferences live: memory|redis|mysql.
	StateBackend string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string

	ProviderDataURL string
	ProviderBookURL string
	ProviderKey     string
	ProviderRPS     int

	DefaultCurrency     string
	SupportedCurrencies []string
	SiteContentPath     string
	SecureCookies       bool

	Workers  int
	CacheTTL time.Duration
}

func Load() Config {
	// .env is optional; real environment always wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		StateBackend: strings.ToLower(env("STATE_BACKEND", "memory")),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_site?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),

		ProviderDataURL: env("PROVIDER_DATA_URL", "https://api.liteapi.travel/v3.0"),
		ProviderBookURL: env("PROVIDER_BOOK_URL", "https://book.liteapi.travel/v3.0"),
		ProviderKey:     env("PROVIDER_API_KEY", ""),
		ProviderRPS:     atoi("PROVIDER_RPS", 5),

		DefaultCurrency:     strings.ToUpper(env("DEFAULT_CURRENCY", "USD")),
		SupportedCurrencies: splitList(env("SUPPORTED_CURRENCIES", "USD,EUR,GBP,JPY,CHF,CAD,AUD,SEK,NOK,DKK,PLN,TRY,AED,INR,BRL,MXN")),
		SiteContentPath:     env("SITE_CONTENT_PATH", ""),

		Workers:  max(atoi("WARM_WORKERS", 4), 1),
		CacheTTL: time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	c.SecureCookies = c.AppEnv == "prod"
	if c.ProviderKey == "" {
		log.Warn().Msg("PROVIDER_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
