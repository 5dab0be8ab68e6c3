package database

import "testing"

func TestConfigURLs(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		c := &Config{Driver: "sqlite", Path: "data.db"}
		if got := c.DSN(); got != "data.db" {
			t.Errorf("DSN = %q", got)
		}
		if got := c.MigrateURL(); got != "sqlite3://data.db" {
			t.Errorf("MigrateURL = %q", got)
		}
	})

	t.Run("postgres", func(t *testing.T) {
		c := &Config{
			Driver: "postgres", Host: "db", Port: "5432",
			User: "u", Password: "p", DBName: "ladder", SSLMode: "disable",
		}
		wantDSN := "host=db port=5432 user=u password=p dbname=ladder sslmode=disable"
		if got := c.DSN(); got != wantDSN {
			t.Errorf("DSN = %q", got)
		}
		wantURL := "postgres://u:p@db:5432/ladder?sslmode=disable"
		if got := c.MigrateURL(); got != wantURL {
			t.Errorf("MigrateURL = %q", got)
		}
	})
}
