package config

import "testing"

func TestConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := ConfigFromEnv(nil)
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.StorageRoot != "./data" || cfg.Delimiter() != ',' || cfg.AuditDriver != "sqlite" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.LowStockSchedule != "@every 1h" {
		t.Errorf("LowStockSchedule = %q", cfg.LowStockSchedule)
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	cfg, err := ConfigFromEnv([]string{
		"STORAGE_ROOT=/srv/procure",
		"FIELD_DELIMITER=|",
		"DEBUG=1",
		"AUDIT_DRIVER=off",
		"REDIS_ADDR=localhost:6379",
		"UNRELATED=x",
	})
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.StorageRoot != "/srv/procure" || cfg.Delimiter() != '|' || !cfg.Debug || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestConfigFromEnv_Invalid(t *testing.T) {
	if _, err := ConfigFromEnv([]string{"FIELD_DELIMITER=;;"}); err == nil {
		t.Error("two-character delimiter: want error")
	}
	if _, err := ConfigFromEnv([]string{"AUDIT_DRIVER=postgres"}); err == nil {
		t.Error("unknown audit driver: want error")
	}
}

func TestNewAuditDB(t *testing.T) {
	t.Setenv("GORM_LOG", "off")
	off, err := NewAuditDB(&Config{AuditDriver: "off"})
	if err != nil || off != nil {
		t.Errorf("driver off = %v, %v; want nil, nil", off, err)
	}
	db, err := NewAuditDB(&Config{AuditDriver: "sqlite", StorageRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("NewAuditDB sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		t.Errorf("ping: %v", err)
	}
	if _, err := NewAuditDB(&Config{AuditDriver: "mysql"}); err == nil {
		t.Error("mysql without DSN: want error")
	}
}
