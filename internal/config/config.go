package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Zachkp/portfolio/internal/typing"
)

type Config struct {
	Env          string   `validate:"required,oneof=dev test prod"`
	Port         int      `validate:"min=1,max=65535"`
	ResumePath   string   `validate:"required_without=ResumeURL"`
	ResumeURL    string   `validate:"omitempty,url"`
	Phrases      []string `validate:"min=1,dive,required"`
	VisitsDB     string   `validate:"omitempty"`
	AdminToken   string   `validate:"omitempty,min=16"`
	TemplatesDir string   `validate:"required"`
	StaticDir    string   `validate:"required"`
}

var validate = validator.New()

// Load reads the environment. Call godotenv first if a .env file should apply.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Env:          getEnv("APP_ENV", "dev"),
		Port:         port,
		ResumePath:   getEnv("RESUME_PATH", "resume.json"),
		ResumeURL:    os.Getenv("RESUME_URL"),
		Phrases:      getEnvList("TYPING_PHRASES", typing.DefaultPhrases),
		VisitsDB:     getEnv("VISITS_DB", "portfolio.db"),
		AdminToken:   os.Getenv("ADMIN_TOKEN"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
