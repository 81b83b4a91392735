// Package config lit la configuration du serveur depuis l'environnement,
// éventuellement complété par un fichier .env.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	ServerAddress string
	StorageDriver string
	PostgresConn  string
	MaxOpenConns  int
	MaxIdleConns  int
	MaxIdleTime   string
	LogLevel      string
	LogFormat     string
	// Planification cron de l'expiration des contrats; vide si désactivée.
	ExpirySchedule string
}

// Load charge les fichiers .env donnés (".env" par défaut, absent toléré) puis
// lit les variables. Une variable déjà définie n'est jamais écrasée par le fichier.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: %s: %w", f, err)
		}
	}

	cfg := Config{
		ServerAddress:  getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", DriverPostgres)),
		PostgresConn:   os.Getenv("POSTGRES_CONN"),
		MaxIdleTime:    getEnv("DB_MAX_IDLE_TIME", "15m"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		ExpirySchedule: getEnv("CONTRACT_EXPIRY_SCHEDULE", "0 2 * * *"),
	}
	if strings.EqualFold(cfg.ExpirySchedule, "off") {
		cfg.ExpirySchedule = ""
	}

	var err error
	if cfg.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 25); err != nil {
		return Config{}, err
	}
	if cfg.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 25); err != nil {
		return Config{}, err
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.PostgresConn == "" {
			return Config{}, fmt.Errorf("config: POSTGRES_CONN is required with STORAGE_DRIVER=%s", DriverPostgres)
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: invalid %s %q", key, v)
	}
	return n, nil
}
