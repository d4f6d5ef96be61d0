package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"       default:"development"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"      default:"8080"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"5"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME" default:"cowork"`
		Timezone string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable          bool `envconfig:"ENABLE"`
			MaxRequests     int  `envconfig:"MAX_REQUESTS"      default:"120"`
			AuthMaxRequests int  `envconfig:"AUTH_MAX_REQUESTS" default:"10"`
			WindowSeconds   int  `envconfig:"WINDOW_SECONDS"    default:"60"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"60"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"         default:"3"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"   default:"2"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"   default:"schema_migrations"`
			MigrationPath  string           `envconfig:"MIGRATION_PATH"    default:"migrations/postgres"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			MaxOpenConns   int              `envconfig:"MAX_OPEN_CONNS"    default:"10"`
			MaxIdleConns   int              `envconfig:"MAX_IDLE_CONNS"    default:"10"`
			ConnMaxLifeMin int              `envconfig:"CONN_MAX_LIFE_MIN" default:"30"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"cowork"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			Notification string `envconfig:"NOTIFICATION" default:"notifications"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Mail struct {
		Enable       bool   `envconfig:"ENABLE"`
		Host         string `envconfig:"HOST"`
		Port         int    `envconfig:"PORT"          default:"587"`
		Username     string `envconfig:"USERNAME"`
		Password     string `envconfig:"PASSWORD"`
		FromAddress  string `envconfig:"FROM_ADDRESS"`
		FromName     string `envconfig:"FROM_NAME"     default:"Cowork"`
		AdminAddress string `envconfig:"ADMIN_ADDRESS"`
	} `envconfig:"MAIL"`

	Invoice struct {
		BaseURL        string `envconfig:"BASE_URL"        default:"https://www.zohoapis.in/books/v3"`
		AccountsURL    string `envconfig:"ACCOUNTS_URL"    default:"https://accounts.zoho.in"`
		OrganizationID string `envconfig:"ORGANIZATION_ID"`
		AccessToken    string `envconfig:"ACCESS_TOKEN"`
		RefreshToken   string `envconfig:"REFRESH_TOKEN"`
		ClientID       string `envconfig:"CLIENT_ID"`
		ClientSecret   string `envconfig:"CLIENT_SECRET"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"15"`
	} `envconfig:"INVOICE"`

	Booking struct {
		DefaultNoticeDays int `envconfig:"DEFAULT_NOTICE_DAYS" default:"30"`
	} `envconfig:"BOOKING"`

	Jobs struct {
		NoticeSweepCron string `envconfig:"NOTICE_SWEEP_CRON" default:"@hourly"`
	} `envconfig:"JOBS"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// PostgresEndpoint is one node of the read/write pair.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Warn().Err(err).Msg("Configuration initialized without .env file")
		}
	}

	return &conf
}
