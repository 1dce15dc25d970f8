package backend

import (
	"context"
	"path/filepath"
	"testing"

	"masterplan/internal/config"
	"masterplan/internal/storage"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Error("FromAppConfig(nil) should fail")
	}

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "/tmp/x.db"})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Error("FromAppConfig() accepted an unknown backend")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"sqlite ok", Config{Type: SQLiteBackend, SQLiteDBPath: "a.db"}, false},
		{"sqlite missing path", Config{Type: SQLiteBackend}, true},
		{"memory ok", Config{Type: MemoryBackend}, false},
		{"memory negative quota", Config{Type: MemoryBackend, MemoryQuota: -1}, true},
		{"unknown", Config{Type: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFactory_CreateBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	mem, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, MemoryQuota: 1024})
	if err != nil {
		t.Fatalf("memory backend error = %v", err)
	}
	if _, ok := mem.Store.(*storage.MemoryStore); !ok {
		t.Errorf("memory backend store = %T", mem.Store)
	}

	dbPath := filepath.Join(t.TempDir(), "nested", "masterplan.db")
	sq, err := f.CreateBackend(ctx, Config{Type: SQLiteBackend, SQLiteDBPath: dbPath})
	if err != nil {
		t.Fatalf("sqlite backend error = %v", err)
	}
	if sq.Cleanup == nil {
		t.Fatal("sqlite backend must provide a cleanup func")
	}
	if err := sq.Store.Set(ctx, storage.KeySettings, `{"targetAmount":1}`); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := sq.Cleanup(); err != nil {
		t.Errorf("Cleanup() error = %v", err)
	}
}
