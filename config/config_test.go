package config

import "testing"

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", User: "u", Password: "p", DBName: "promptflow"}
	want := "postgres://u:p@db:5432/promptflow?sslmode=disable"
	if got := p.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}

	p.URL = "postgres://elsewhere/db"
	if got := p.DSN(); got != p.URL {
		t.Fatalf("url must win over parts, got %q", got)
	}
}

func TestPostgresValidate(t *testing.T) {
	if err := (PostgresConfig{URL: "postgres://x/y"}).Validate(); err != nil {
		t.Fatalf("url-only config must validate: %v", err)
	}
	if err := (PostgresConfig{Host: "db"}).Validate(); err == nil {
		t.Fatal("missing dbname must fail validation")
	}
	if err := (PostgresConfig{DBName: "db"}).Validate(); err == nil {
		t.Fatal("missing host must fail validation")
	}
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache"}
	if got := r.Addr(); got != "cache:6379" {
		t.Fatalf("Addr = %q", got)
	}
	if !r.Enabled() {
		t.Fatal("host set must enable the cache")
	}
	if (RedisConfig{}).Enabled() {
		t.Fatal("empty host must disable the cache")
	}
}
