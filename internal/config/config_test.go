package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/claims")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("expected default rate limit 10/min, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("unexpected pool defaults: max=%d min=%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.ImportBatchSize != 500 {
		t.Errorf("expected default import batch size 500, got %d", cfg.ImportBatchSize)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DATABASE_URL is unset")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/claims")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.RateLimitPerMinute != 25 {
		t.Errorf("expected rate limit 25, got %d", cfg.RateLimitPerMinute)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{RateLimitPerMinute: 10, ImportBatchSize: 500, DBMaxConns: 20, DBMinConns: 5}, false},
		{"zero rate limit", Config{RateLimitPerMinute: 0, ImportBatchSize: 500, DBMaxConns: 20, DBMinConns: 5}, true},
		{"negative burst", Config{RateLimitPerMinute: 10, RateLimitBurst: -1, ImportBatchSize: 500, DBMaxConns: 20, DBMinConns: 5}, true},
		{"zero batch size", Config{RateLimitPerMinute: 10, ImportBatchSize: 0, DBMaxConns: 20, DBMinConns: 5}, true},
		{"min conns above max", Config{RateLimitPerMinute: 10, ImportBatchSize: 500, DBMaxConns: 5, DBMinConns: 20}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
