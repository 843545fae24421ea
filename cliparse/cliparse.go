package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/retroboard/models"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	ParticipantSecret string
	DeletePolicy      string
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("retroboard", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, or memory)")

	// Policy
	fs.StringVar(&cfg.DeletePolicy, "delete-policy", "", "Who may delete cards (any, author, or owner)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ParticipantSecret, "participant-secret", "", "Participant token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	switch cfg.DatabaseType {
	case "sqlite", "postgres", "memory":
	default:
		return Config{}, fmt.Errorf("invalid database type %q (use sqlite, postgres, or memory)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		switch cfg.DatabaseType {
		case "sqlite":
			cfg.DatabaseURL = "file:retroboard.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		case "postgres":
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	}

	if cfg.DeletePolicy == "" {
		cfg.DeletePolicy = os.Getenv("CARD_DELETE_POLICY")
		if cfg.DeletePolicy == "" {
			cfg.DeletePolicy = models.DeletePolicyAny
		}
	}
	switch cfg.DeletePolicy {
	case models.DeletePolicyAny, models.DeletePolicyAuthor, models.DeletePolicyOwner:
	default:
		return Config{}, fmt.Errorf("invalid delete policy %q (use any, author, or owner)", cfg.DeletePolicy)
	}

	// Secrets - MUST be provided
	if cfg.ParticipantSecret == "" {
		cfg.ParticipantSecret = os.Getenv("PARTICIPANT_SECRET")
	}
	if cfg.ParticipantSecret == "" {
		return Config{}, errors.New("PARTICIPANT_SECRET required")
	}

	return cfg, nil
}
