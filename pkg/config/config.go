package config

import (
	"log"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	Groq struct {
		ApiKey  string `env:"GROQ_API_KEY"`
		BaseUrl string `env:"GROQ_BASE_URL" env-default:"https://api.groq.com/openai/v1"`
		Model   string `env:"GROQ_MODEL" env-default:"llama3-70b-8192"`
	}
	Sheets struct {
		CredentialsJSON string `env:"GOOGLE_SERVICE_CREDS"`
		SpreadsheetID   string `env:"GOOGLE_SHEET_ID"`
		ExtensionSheet  string `env:"EXTENSION_SHEET_NAME" env-default:"Extension Reports"`
		ManualSheet     string `env:"MANUAL_SHEET_NAME" env-default:"Manual Reports"`
	}
	Extractor struct {
		Mirrors        string `env:"NITTER_MIRRORS" env-default:"https://nitter.privacydev.net,https://nitter.moomoo.me,https://nitter.net,https://nitter.1d4.us,https://nitter.poast.org"`
		SweepMinutes   int    `env:"RETRY_SWEEP_MINUTES" env-default:"60"`
		DailyLimit     int    `env:"DAILY_TWEETS_LIMIT" env-default:"50"`
		BrowserHeaded  bool   `env:"BROWSER_HEADED" env-default:"false"`
		ChromeExecPath string `env:"CHROME_EXEC_PATH"`
	}
}

// MirrorList splits the configured mirror string into ordered base URLs.
func (c *Config) MirrorList() []string {
	parts := strings.Split(c.Extractor.Mirrors, ",")
	mirrors := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(strings.TrimSpace(p), "/")
		if p != "" {
			mirrors = append(mirrors, p)
		}
	}
	return mirrors
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
