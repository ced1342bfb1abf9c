package postgres

import (
	"fmt"
	"strings"

	"github.com/navigara/navigara-backend/config"
)

// DSN renders a lib/pq key/value connection string. Values are quoted so
// passwords with spaces or quotes survive.
func DSN(cfg *config.DatabaseConfig) string {
	parts := []string{
		kv("host", cfg.Host),
		fmt.Sprintf("port=%d", cfg.Port),
		kv("user", cfg.User),
	}
	if cfg.Password != "" {
		parts = append(parts, kv("password", cfg.Password))
	}
	parts = append(parts, kv("dbname", cfg.Name), "sslmode=disable")
	return strings.Join(parts, " ")
}

func kv(key, value string) string {
	value = strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return fmt.Sprintf("%s='%s'", key, value)
}
