package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB", "MYSQL_USER", "MYSQL_PASS", "REDIS_ADDR", "REDIS_DB", "IDEMPOTENCY_TTL_SECONDS", "SWEEP_INTERVAL_SECONDS"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q", c.AppPort)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("IdempTTLSecs = %d", c.IdempTTLSecs)
	}
	if c.SweepIntervalSecs != 0 {
		t.Fatalf("SweepIntervalSecs = %d", c.SweepIntervalSecs)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("SWEEP_INTERVAL_SECONDS", "60")
	c := Load()
	if c.MySQLHost != "db.internal" || c.MySQLPort != "3307" {
		t.Fatalf("mysql = %s:%s", c.MySQLHost, c.MySQLPort)
	}
	if c.SweepIntervalSecs != 60 {
		t.Fatalf("SweepIntervalSecs = %d", c.SweepIntervalSecs)
	}
}

func TestValidate_Errors(t *testing.T) {
	base := func() *Config {
		c := Load()
		return c
	}

	c := base()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Fatal("empty mysql host must fail")
	}

	c = base()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("bad mysql port must fail")
	}

	c = base()
	c.SweepIntervalSecs = -1
	if err := c.Validate(); err == nil {
		t.Fatal("negative sweep interval must fail")
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_PORT", "3306")
	t.Setenv("MYSQL_DB", "ledger")
	t.Setenv("MYSQL_USER", "u")
	t.Setenv("MYSQL_PASS", "p")
	dsn := Load().MySQLDSN()
	if !strings.HasPrefix(dsn, "u:p@tcp(db:3306)/ledger?") {
		t.Fatalf("dsn = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Fatalf("dsn missing parseTime: %q", dsn)
	}
}
