package db

import (
	"os"
	"testing"
)

// TestConnectPostgres exercises the Postgres connection when DATABASE_URL
// is available; it documents the env contract otherwise.
func TestConnectPostgres(t *testing.T) {
	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		if os.Getenv("DATABASE_URL") == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		pool := ConnectPostgres()
		defer pool.Close()
	})
}
