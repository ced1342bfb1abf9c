package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/navigara/navigara-backend/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5433, User: "nav", Password: "it's secret", Name: "navigara"}
	assert.Equal(t,
		`host='db' port=5433 user='nav' password='it\'s secret' dbname='navigara' sslmode=disable`,
		DSN(cfg))

	cfg.Password = ""
	assert.Equal(t, `host='db' port=5433 user='nav' dbname='navigara' sslmode=disable`, DSN(cfg))
}
