package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"pizzeria/internal/adapters/out/geo"
	"pizzeria/internal/adapters/out/natsbus"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/jobs"
)

type Config struct {
	HTTPPort   string `mapstructure:"HTTP_PORT" validate:"required,numeric"`
	DBHost     string `mapstructure:"DB_HOST" validate:"required"`
	DBPort     string `mapstructure:"DB_PORT" validate:"required,numeric"`
	DBUser     string `mapstructure:"DB_USER" validate:"required"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME" validate:"required"`
	DBSslMode  string `mapstructure:"DB_SSLMODE" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	JWTSecret string `mapstructure:"JWT_SECRET" validate:"required"`

	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY" validate:"required"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET" validate:"required"`
	PaymentCurrency     string `mapstructure:"PAYMENT_CURRENCY" validate:"required,len=3"`

	GeoAPIKey    string        `mapstructure:"GEO_API_KEY" validate:"required"`
	GeoBaseURL   string        `mapstructure:"GEO_BASE_URL" validate:"required,url"`
	GeoOriginLat float64       `mapstructure:"GEO_ORIGIN_LAT" validate:"latitude"`
	GeoOriginLng float64       `mapstructure:"GEO_ORIGIN_LNG" validate:"longitude"`
	GeoTimeout   time.Duration `mapstructure:"GEO_TIMEOUT" validate:"gt=0"`

	NATSURL           string `mapstructure:"NATS_URL" validate:"omitempty,url"`
	NATSSubjectPrefix string `mapstructure:"NATS_SUBJECT_PREFIX" validate:"required"`

	WebhookLedgerRetention time.Duration `mapstructure:"WEBHOOK_LEDGER_RETENTION" validate:"gt=0"`

	OTelEnabled  bool   `mapstructure:"OTEL_ENABLED"`
	OTelEndpoint string `mapstructure:"OTEL_ENDPOINT" validate:"required_if=OTelEnabled true"`

	AppName    string `mapstructure:"APP_NAME" validate:"required"`
	AppVersion string `mapstructure:"APP_VERSION" validate:"required"`
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddress() string {
	return "0.0.0.0:" + c.HTTPPort
}

var defaults = map[string]any{
	"HTTP_PORT":                "8080",
	"DB_HOST":                  "localhost",
	"DB_PORT":                  "5432",
	"DB_USER":                  "",
	"DB_PASSWORD":              "",
	"DB_NAME":                  "",
	"DB_SSLMODE":               "disable",
	"JWT_SECRET":               "",
	"STRIPE_SECRET_KEY":        "",
	"STRIPE_WEBHOOK_SECRET":    "",
	"PAYMENT_CURRENCY":         commands.DefaultPaymentCurrency,
	"GEO_API_KEY":              "",
	"GEO_BASE_URL":             geo.DefaultBaseURL,
	"GEO_ORIGIN_LAT":           0.0,
	"GEO_ORIGIN_LNG":           0.0,
	"GEO_TIMEOUT":              5 * time.Second,
	"NATS_URL":                 "",
	"NATS_SUBJECT_PREFIX":      natsbus.DefaultSubjectPrefix,
	"WEBHOOK_LEDGER_RETENTION": jobs.DefaultLedgerRetention,
	"OTEL_ENABLED":             false,
	"OTEL_ENDPOINT":            "",
	"APP_NAME":                 "pizzeria",
	"APP_VERSION":              "dev",
}

// LoadConfig reads envFile when it exists, then the process environment, and
// validates the result. Real environment variables win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
