package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvStore     = "FINHEALTH_STORE"
	EnvStorePath = "FINHEALTH_STORE_PATH"
	EnvDSN       = "FINHEALTH_DSN"
	EnvLogLevel  = "FINHEALTH_LOG_LEVEL"
	EnvLogFormat = "FINHEALTH_LOG_FORMAT"
	EnvAddr      = "FINHEALTH_ADDR"
)

// Defaults applied when neither flags nor environment set a value
const (
	DefaultStore     = "file"
	DefaultStorePath = ".finhealth/snapshot.yaml"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultAddr      = ":8080"
)

// Settings holds process-level configuration
type Settings struct {
	Store     string
	StorePath string
	DSN       string
	LogLevel  string
	LogFormat string
	Addr      string

	// EnvFileLoaded reports whether a .env file was found
	EnvFileLoaded bool
}

// LoadSettings reads settings from the environment after loading the given
// .env files (".env" when none are named). Missing files are not an error.
// Variables already set in the environment win over .env values.
func LoadSettings(envFiles ...string) (*Settings, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	loaded := false
	for _, f := range envFiles {
		err := godotenv.Load(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		loaded = true
	}

	return &Settings{
		Store:         getEnv(EnvStore, DefaultStore),
		StorePath:     getEnv(EnvStorePath, DefaultStorePath),
		DSN:           getEnv(EnvDSN, ""),
		LogLevel:      getEnv(EnvLogLevel, DefaultLogLevel),
		LogFormat:     getEnv(EnvLogFormat, DefaultLogFormat),
		Addr:          getEnv(EnvAddr, DefaultAddr),
		EnvFileLoaded: loaded,
	}, nil
}

// getEnv returns the variable or the default when unset or empty
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
