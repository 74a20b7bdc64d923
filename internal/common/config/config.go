package config

import (
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`

		// When false the service runs on the in-memory repository and loses
		// all records on restart.
		Enabled bool `env:"REDIS_ENABLED" envDefault:"false"`
	}

	Telegram struct {
		BotToken string `env:"BOT_TOKEN"`
		// Channel the placeholder feed reads announcements from.
		FeedChannel string `env:"FEED_CHANNEL" envDefault:"@airdrops"`
	}

	AI struct {
		APIKey string `env:"GEMINI_API_KEY"`
		Model  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
		// TTL in seconds for cached research answers.
		CacheTTL int `env:"AI_CACHE_TTL" envDefault:"3600"`
	}

	Sheets struct {
		CredentialsFile string `env:"SHEETS_CREDENTIALS_FILE"`
		SpreadsheetID   string `env:"SHEETS_SPREADSHEET_ID"`
		Range           string `env:"SHEETS_RANGE" envDefault:"Airdrops!A1:F"`
	}
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Missing .env is fine, variables may be set directly in the
		// environment (the usual case in production).
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
