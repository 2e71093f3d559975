package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lorenzotomasdiez/roundtable/internal/discussion"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	APIKey    string
	OutputDir string
	Language  string
	Tier      discussion.Tier
	LogFile   string
	Turns     int
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("config: OPENROUTER_API_KEY is required")
	}

	outputDir := os.Getenv("ROUNDTABLE_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "output"
	}

	language := os.Getenv("ROUNDTABLE_LANGUAGE")
	if language == "" {
		language = "en"
	}

	tier := discussion.Tier(os.Getenv("ROUNDTABLE_TIER"))
	if tier == "" {
		tier = discussion.TierFree
	}
	if tier != discussion.TierFree && tier != discussion.TierPro {
		return nil, fmt.Errorf("config: invalid ROUNDTABLE_TIER %q", tier)
	}

	logFile := os.Getenv("ROUNDTABLE_LOG_FILE")
	if logFile == "" {
		logFile = "roundtable.log"
	}

	turns, err := envInt("ROUNDTABLE_TURNS", discussion.MaxActualTurns)
	if err != nil {
		return nil, err
	}
	if turns < 1 || turns > discussion.MaxActualTurns {
		return nil, fmt.Errorf("config: ROUNDTABLE_TURNS must be 1-%d, got %d", discussion.MaxActualTurns, turns)
	}

	return &Config{
		APIKey:    apiKey,
		OutputDir: outputDir,
		Language:  language,
		Tier:      tier,
		LogFile:   logFile,
		Turns:     turns,
	}, nil
}

// LoadDotEnv loads a .env file into the environment if it exists; existing
// variables are never overridden.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: loading %s: %w", path, err)
	}
	return nil
}

func envInt(key string, defaultVal int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s value %q: %w", key, s, err)
	}
	return v, nil
}
