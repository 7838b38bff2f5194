package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DSN", "root:secret@tcp(127.0.0.1:3306)/streamhub?parseTime=True")
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123")
	t.Setenv("AZURE_STORAGE_ACCOUNT", "devstore")
	t.Setenv("AZURE_STORAGE_KEY", "c2VjcmV0")
	t.Setenv("AZURE_CONTAINER_RAW", "raw")
}

func TestParseDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBDriver != DriverMySQL {
		t.Errorf("DBDriver = %q, want mysql", cfg.DBDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
	if cfg.Storage.Provider != StorageAzure {
		t.Errorf("Provider = %q, want azure", cfg.Storage.Provider)
	}
	if cfg.Storage.UploadTTL != 60*time.Minute {
		t.Errorf("UploadTTL = %v, want 60m", cfg.Storage.UploadTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestParseProviderAndDriverAreCaseInsensitive(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("STORAGE_PROVIDER", "MINIO")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_ACCESS_KEY", "minioadmin")
	t.Setenv("MINIO_SECRET_KEY", "minioadmin")
	t.Setenv("MINIO_BUCKET", "raw")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.DBDriver != DriverPostgres || cfg.Storage.Provider != StorageMinio {
		t.Fatalf("driver=%q provider=%q", cfg.DBDriver, cfg.Storage.Provider)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		DBDriver: "sqlite",
		JWTTTL:   time.Hour,
		Storage:  StorageConfig{Provider: StorageS3, UploadTTL: time.Minute},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	msg := err.Error()
	for _, want := range []string{"DB_DSN", "DB_DRIVER", "JWT_SECRET_KEY", "S3_BUCKET"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestLoadWorkerOnlyNeedsDatabase(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil { // 没有.env文件
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DB_DSN", "host=127.0.0.1 dbname=streamhub")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("JWT_SECRET_KEY", "")

	cfg, err := LoadWorker()
	if err != nil {
		t.Fatalf("LoadWorker() error = %v", err)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}

	t.Setenv("DB_DSN", "")
	if _, err := LoadWorker(); err == nil || !strings.Contains(err.Error(), "DB_DSN") {
		t.Errorf("LoadWorker() without DSN = %v", err)
	}
}
