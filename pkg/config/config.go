package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Backend  BackendConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	List     ListConfig
	Calendar CalendarConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	ShopName string // encabezado de los PDF
	LogLevel string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins string // lista separada por comas para CORS
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BackendConfig apunta al API REST del taller (fuente de verdad de clientes, órdenes, trabajos...).
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Timeout devuelve el timeout de cliente HTTP hacia el backend.
func (c BackendConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DBConfig configuración de PostgreSQL (opcional: guarda el estado de vistas).
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// Enabled indica si hay una base configurada.
func (c DBConfig) Enabled() bool {
	return c.DatabaseURL != "" || c.Host != ""
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// RedisConfig caché opcional del calendario externo.
type RedisConfig struct {
	URL                string
	CalendarTTLSeconds int
}

// CalendarTTL duración de la caché de eventos externos.
func (c RedisConfig) CalendarTTL() time.Duration {
	return time.Duration(c.CalendarTTLSeconds) * time.Second
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// AdminConfig contraseña del panel interno (hash bcrypt).
type AdminConfig struct {
	PasswordHash string
}

// ListConfig valores por defecto de los listados paginados.
type ListConfig struct {
	DefaultPageSize int
}

// CalendarConfig ventana de "próximos eventos".
type CalendarConfig struct {
	UpcomingDays  int
	UpcomingLimit int
	PollMinutes   int
}

// PollInterval intervalo de refresco de próximos eventos.
func (c CalendarConfig) PollInterval() time.Duration {
	return time.Duration(c.PollMinutes) * time.Minute
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, BACKEND_URL, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "humble-crm"),
			ShopName: getString(v, "SHOP_NAME", "Humble Garage"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			AllowedOrigins: getString(v, "HTTP_ALLOWED_ORIGINS", "*"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(getString(v, "BACKEND_URL", "http://localhost:8000"), "/"),
			TimeoutSeconds: getInt(v, "BACKEND_TIMEOUT_SECONDS", 15),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", ""),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "humble_crm"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:                getString(v, "REDIS_URL", ""),
			CalendarTTLSeconds: getInt(v, "REDIS_CALENDAR_TTL_SECONDS", 120),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "humble-crm"),
		},
		Admin: AdminConfig{
			PasswordHash: getString(v, "ADMIN_PASSWORD_HASH", ""),
		},
		List: ListConfig{
			DefaultPageSize: getInt(v, "LIST_DEFAULT_PAGE_SIZE", 20),
		},
		Calendar: CalendarConfig{
			UpcomingDays:  getInt(v, "CALENDAR_UPCOMING_DAYS", 7),
			UpcomingLimit: getInt(v, "CALENDAR_UPCOMING_LIMIT", 5),
			PollMinutes:   getInt(v, "CALENDAR_POLL_MINUTES", 5),
		},
	}

	if cfg.App.Env == "production" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET es obligatorio en production")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
