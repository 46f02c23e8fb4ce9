package config

import (
	"errors"
	"fmt"
	"os"
)

const defaultAPIBaseURL = "https://api.themoviedb.org/3"

// Config holds runtime settings for the app.
type Config struct {
	APIKey     string
	APIBaseURL string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIKey:     os.Getenv("TMDB_API_KEY"),
		APIBaseURL: os.Getenv("TMDB_API_BASE_URL"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("TMDB_API_KEY is required")
	}
	if c.APIBaseURL == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	return nil
}
