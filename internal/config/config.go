package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

type Config struct {
	App             App             `mapstructure:",squash"`
	Server          Server          `mapstructure:",squash"`
	Database        Database        `mapstructure:",squash"`
	Auth            Auth            `mapstructure:",squash"`
	Forecast        Forecast        `mapstructure:",squash"`
	ZoneRankingSync ZoneRankingSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type App struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
}

// Auth guarda a credencial única compartilhada e o segredo de assinatura dos tokens
type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	Username string        `mapstructure:"auth_username"`
	Password string        `mapstructure:"auth_password"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Forecast struct {
	Horizon    int `mapstructure:"forecast_horizon"`
	MaxHorizon int `mapstructure:"forecast_max_horizon"`
}

type ZoneRankingSync struct {
	CronSchedule      string `mapstructure:"zone_ranking_sync_cron"`
	MaxConcurrentJobs int    `mapstructure:"zone_ranking_sync_max_concurrent_jobs"`
	Enabled           bool   `mapstructure:"zone_ranking_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_USERNAME", "admin")
	viper.SetDefault("AUTH_PASSWORD", "admin") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("FORECAST_HORIZON", 3) // 3 meses projetados
	viper.SetDefault("FORECAST_MAX_HORIZON", 24)

	// Snapshot do ranking por zona: todos os dias às 2h, desabilitado por padrão
	viper.SetDefault("ZONE_RANKING_SYNC_CRON", "0 2 * * *")
	viper.SetDefault("ZONE_RANKING_SYNC_MAX_CONCURRENT_JOBS", 3)
	viper.SetDefault("ZONE_RANKING_SYNC_ENABLED", false)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	config.Database.DSN = BuildDSN(config.Database)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// BuildDSN monta a URL de conexão no formato esperado pelo lib/pq
func BuildDSN(db Database) string {
	dsn := fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)
	if db.SSLMode != "" {
		dsn = fmt.Sprintf("%s?sslmode=%s", dsn, db.SSLMode)
	}
	return dsn
}

// Validate rejeita combinações que deixariam o serviço em estado inconsistente
func (c *Config) Validate() error {
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("config: FORECAST_HORIZON deve ser >= 1, recebido %d", c.Forecast.Horizon)
	}
	if c.Forecast.MaxHorizon < c.Forecast.Horizon || c.Forecast.MaxHorizon > domain.MaxForecastHorizon {
		return fmt.Errorf("config: FORECAST_MAX_HORIZON deve estar entre FORECAST_HORIZON (%d) e %d, recebido %d",
			c.Forecast.Horizon, domain.MaxForecastHorizon, c.Forecast.MaxHorizon)
	}
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return errors.New("config: AUTH_USERNAME e AUTH_PASSWORD são obrigatórios")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: AUTH_TOKEN_TTL inválido: %s", c.Auth.TokenTTL)
	}
	if c.ZoneRankingSync.Enabled && c.ZoneRankingSync.MaxConcurrentJobs < 1 {
		return errors.New("config: ZONE_RANKING_SYNC_MAX_CONCURRENT_JOBS deve ser >= 1")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
