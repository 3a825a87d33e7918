package server

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recipebox/internal/db"
)

func openTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(database); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func TestNewAppliesRateLimitDefaults(t *testing.T) {
	srv := New(Config{Addr: ":0"})

	if srv.config.RateLimitRPS != 5 {
		t.Fatalf("RateLimitRPS = %f, want default 5", srv.config.RateLimitRPS)
	}
	if srv.config.RateLimitBurst != 10 {
		t.Fatalf("RateLimitBurst = %d, want default 10", srv.config.RateLimitBurst)
	}
	if srv.Handler() == nil {
		t.Fatal("expected a configured handler")
	}
}

func TestStartAndStop(t *testing.T) {
	database := openTestDatabase(t)

	srv := New(Config{Addr: "127.0.0.1:0", Database: database})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	if err := <-errCh; err == nil {
		t.Fatal("expected ErrServerClosed from Start after shutdown")
	}
}
