package database

import (
	"strings"
	"testing"

	"github.com/jmbtrust/donation-backend/internal/config"
)

func TestDSN(t *testing.T) {
	got := dsn(config.Config{
		DBUser: "app",
		DBPass: "secret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "donations",
	})

	if !strings.HasPrefix(got, "app:secret@tcp(db.internal:3306)/donations") {
		t.Errorf("dsn = %q", got)
	}
	for _, param := range []string{"parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(got, param) {
			t.Errorf("dsn %q missing %s", got, param)
		}
	}
}

func TestDSNEmptyPassword(t *testing.T) {
	got := dsn(config.Config{DBUser: "app", DBHost: "localhost", DBPort: "3306", DBName: "donations"})
	if !strings.HasPrefix(got, "app@tcp(localhost:3306)/donations") {
		t.Errorf("dsn = %q", got)
	}
}
