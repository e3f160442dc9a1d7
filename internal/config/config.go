package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	Meta                 Meta                 `mapstructure:",squash"`
	Vault                Vault                `mapstructure:",squash"`
	RateLimit            RateLimit            `mapstructure:",squash"`
	Redis                Redis                `mapstructure:",squash"`
	Sync                 Sync                 `mapstructure:",squash"`
	OAuth                OAuth                `mapstructure:",squash"`
	RollupSchedule       RollupSchedule       `mapstructure:",squash"`
	PlatformSyncSchedule PlatformSyncSchedule `mapstructure:",squash"`
	SecretKey            string               `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type Meta struct {
	BaseURL          string        `mapstructure:"meta_base_url"`
	URL              string        `mapstructure:"meta_url"`
	Version          string        `mapstructure:"meta_version"`
	DialogURL        string        `mapstructure:"meta_dialog_url"`
	AppID            string        `mapstructure:"meta_app_id"`
	AppSecret        string        `mapstructure:"meta_app_secret"`
	RedirectURI      string        `mapstructure:"meta_redirect_uri"`
	HTTPTimeout      time.Duration `mapstructure:"meta_http_timeout"`
	RetryBackoff     time.Duration `mapstructure:"meta_retry_backoff"`
	RemoteRetryAfter time.Duration `mapstructure:"meta_remote_retry_after"`
	PageSize         int           `mapstructure:"meta_page_size"`
}

type Vault struct {
	Key string `mapstructure:"vault_key"`
}

type RateLimit struct {
	Calls  int           `mapstructure:"rate_limit_calls"`
	Window time.Duration `mapstructure:"rate_limit_window"`
	Store  string        `mapstructure:"rate_limit_store"`
}

type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type Sync struct {
	Cooldown time.Duration `mapstructure:"sync_cooldown"`
}

type OAuth struct {
	StateTTL    time.Duration `mapstructure:"oauth_state_ttl"`
	FrontendURL string        `mapstructure:"oauth_frontend_url"`
	Scopes      []string      `mapstructure:"oauth_scopes"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

// IsProduction indica se o ambiente exige segredos configurados explicitamente
func (a App) IsProduction() bool {
	env := strings.ToLower(a.Env)
	return env == "production" || env == "prod"
}

type RollupSchedule struct {
	CronSchedule string `mapstructure:"attribution_rollup_cron"`
	LookbackDays int    `mapstructure:"attribution_rollup_lookback_days"`
	Enabled      bool   `mapstructure:"attribution_rollup_enabled"`
}

type PlatformSyncSchedule struct {
	CronSchedule        string `mapstructure:"platform_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"platform_sync_request_delay_seconds"`
	SpendLookbackDays   int    `mapstructure:"platform_sync_spend_lookback_days"`
	Enabled             bool   `mapstructure:"platform_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:4001")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/adsync?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_DIALOG_URL", "https://www.facebook.com")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_REDIRECT_URI", "http://localhost:8000/v1/oauth/meta/callback")
	viper.SetDefault("META_HTTP_TIMEOUT", "10s")
	viper.SetDefault("META_RETRY_BACKOFF", "1s")      // 1s, 2s, 4s
	viper.SetDefault("META_REMOTE_RETRY_AFTER", "5m") // quando a Meta não informa o tempo de espera
	viper.SetDefault("META_PAGE_SIZE", 500)

	viper.SetDefault("VAULT_KEY", "") // 64 caracteres hex; obrigatório em produção

	viper.SetDefault("RATE_LIMIT_CALLS", 200)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1h")
	viper.SetDefault("RATE_LIMIT_STORE", "memory") // memory | redis

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("SYNC_COOLDOWN", "60s")

	viper.SetDefault("OAUTH_STATE_TTL", "10m")
	viper.SetDefault("OAUTH_FRONTEND_URL", "http://localhost:3000/integrations/meta")
	viper.SetDefault("OAUTH_SCOPES", "ads_management,ads_read,business_management")

	viper.SetDefault("SECRET_KEY", "your_secret_key") // segredo HMAC dos JWT emitidos pelo serviço de identidade

	// Defaults para o rollup de atribuição
	viper.SetDefault("ATTRIBUTION_ROLLUP_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("ATTRIBUTION_ROLLUP_LOOKBACK_DAYS", 3)  // Pedidos podem ser cancelados dias depois
	viper.SetDefault("ATTRIBUTION_ROLLUP_ENABLED", false)    // Habilitar rollup agendado

	// Defaults para a sincronização com a plataforma
	viper.SetDefault("PLATFORM_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("PLATFORM_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre tenants
	viper.SetDefault("PLATFORM_SYNC_SPEND_LOOKBACK_DAYS", 1)   // Apenas ontem
	viper.SetDefault("PLATFORM_SYNC_ENABLED", false)           // Habilitar sincronização agendada

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("APP_ENV", "development")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
