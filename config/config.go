package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds every runtime option of the portal. Values come from the
// environment (optionally seeded from a .env file).
type Settings struct {
	ServerPort     string   `mapstructure:"SERVER_PORT"`
	GinMode        string   `mapstructure:"GIN_MODE"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	AllowedOrigins []string `mapstructure:"-"`

	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBDatabase  string `mapstructure:"DB_DATABASE"`
	DBUsername  string `mapstructure:"DB_USERNAME"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DebugSQL    bool   `mapstructure:"DEBUG_SQL"`
	AutoMigrate bool   `mapstructure:"AUTO_MIGRATE"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	SignInURL string `mapstructure:"SIGN_IN_URL"`

	SMTPHost          string `mapstructure:"SMTP_HOST"`
	SMTPPort          int    `mapstructure:"SMTP_PORT"`
	SMTPUser          string `mapstructure:"SMTP_USER"`
	SMTPPass          string `mapstructure:"SMTP_PASS"`
	SMTPFrom          string `mapstructure:"SMTP_FROM"`
	SMTPSkipTLSVerify bool   `mapstructure:"SMTP_SKIP_TLS_VERIFY"`

	NATSURL      string `mapstructure:"NATS_URL"`
	NATSSubject  string `mapstructure:"NATS_SUBJECT_PREFIX"`
	LogsToken    string `mapstructure:"LOGS_TOKEN"`
	ShowcaseSize int    `mapstructure:"SHOWCASE_LIMIT"`
	SiteBaseURL  string `mapstructure:"SITE_BASE_URL"`
}

// Cfg is the process-wide configuration loaded by Load.
var Cfg = defaultSettings()

func defaultSettings() Settings {
	return Settings{
		ServerPort:     "8080",
		GinMode:        "debug",
		AllowedOrigins: []string{"http://localhost:3000"},
		DBPort:         "3306",
		SignInURL:      "/sign-in",
		SMTPPort:       587,
		NATSSubject:    "proposals",
		ShowcaseSize:   20,
		SiteBaseURL:    "http://localhost:3000",
	}
}

var envKeys = []string{
	"SERVER_PORT", "GIN_MODE", "ENVIRONMENT",
	"DB_HOST", "DB_PORT", "DB_DATABASE", "DB_USERNAME", "DB_PASSWORD", "DEBUG_SQL", "AUTO_MIGRATE",
	"JWT_SECRET", "JWT_ISSUER", "SIGN_IN_URL",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_FROM", "SMTP_SKIP_TLS_VERIFY",
	"NATS_URL", "NATS_SUBJECT_PREFIX", "LOGS_TOKEN", "SHOWCASE_LIMIT", "SITE_BASE_URL",
}

// Load reads .env (if present) and the process environment into Cfg.
func Load() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	defaults := defaultSettings()
	v.SetDefault("SERVER_PORT", defaults.ServerPort)
	v.SetDefault("GIN_MODE", defaults.GinMode)
	v.SetDefault("DB_PORT", defaults.DBPort)
	v.SetDefault("SIGN_IN_URL", defaults.SignInURL)
	v.SetDefault("SMTP_PORT", defaults.SMTPPort)
	v.SetDefault("NATS_SUBJECT_PREFIX", defaults.NATSSubject)
	v.SetDefault("SHOWCASE_LIMIT", defaults.ShowcaseSize)
	v.SetDefault("SITE_BASE_URL", defaults.SiteBaseURL)
	v.SetDefault("ALLOWED_ORIGINS", strings.Join(defaults.AllowedOrigins, ","))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	if err := v.BindEnv("ALLOWED_ORIGINS"); err != nil {
		return err
	}

	settings := defaults
	if err := v.Unmarshal(&settings); err != nil {
		return err
	}
	settings.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	if settings.ShowcaseSize <= 0 {
		settings.ShowcaseSize = defaults.ShowcaseSize
	}

	Cfg = settings
	return nil
}

// IsProduction reports whether the service runs with production defaults.
func (s Settings) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production") || s.GinMode == "release"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
