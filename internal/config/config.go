package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	StorageAzure = "azure"
	StorageMinio = "minio"
	StorageS3    = "s3"
)

// Config 保存服务运行需要的所有配置，全部来自环境变量（开发时可以写在.env里）
type Config struct {
	Port        string   `env:"APP_PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"release"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DBDSN    string `env:"DB_DSN"`

	JWTSecret string        `env:"JWT_SECRET_KEY"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// 为空则不启用缓存
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// 为空则不发布事件
	RabbitMQURL string `env:"RABBITMQ_URL"`

	// 设置后，启动时确保保留账号admin存在
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Storage StorageConfig
}

type StorageConfig struct {
	Provider  string        `env:"STORAGE_PROVIDER" envDefault:"azure"`
	UploadTTL time.Duration `env:"UPLOAD_URL_TTL" envDefault:"60m"`

	AzureAccount   string `env:"AZURE_STORAGE_ACCOUNT"`
	AzureKey       string `env:"AZURE_STORAGE_KEY"`
	AzureContainer string `env:"AZURE_CONTAINER_RAW"`
	// 默认 https://<account>.blob.core.windows.net
	AzureEndpoint string `env:"AZURE_BLOB_ENDPOINT"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"`
	MinioBucket    string `env:"MINIO_BUCKET"`
	MinioRegion    string `env:"MINIO_REGION" envDefault:"us-east-1"`

	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
}

// WorkerConfig 是消费者和seeder用的配置，不需要JWT和存储
type WorkerConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DBDSN    string `env:"DB_DSN"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	RabbitMQURL   string `env:"RABBITMQ_URL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load 先尝试加载.env文件（不存在不报错），再从环境变量解析配置并校验
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	return Parse()
}

// LoadWorker 和Load一样先读.env，只校验数据库配置
func LoadWorker() (*WorkerConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	cfg := &WorkerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	if err := validateDatabase(cfg.DBDriver, cfg.DBDSN); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("加载.env文件失败: %w", err)
		}
	}
	return nil
}

func validateDatabase(driver, dsn string) error {
	var errs []error
	if dsn == "" {
		errs = append(errs, errors.New("DB_DSN 不能为空"))
	}
	if driver != DriverMySQL && driver != DriverPostgres {
		errs = append(errs, fmt.Errorf("不支持的 DB_DRIVER: %q", driver))
	}
	return errors.Join(errs...)
}

// Parse 只从当前环境变量解析，测试里直接用它
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}
	cfg.DBDriver = strings.ToLower(cfg.DBDriver)
	cfg.Storage.Provider = strings.ToLower(cfg.Storage.Provider)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查必填项以及各存储后端需要的配置组合
func (c *Config) Validate() error {
	var errs []error
	if err := validateDatabase(c.DBDriver, c.DBDSN); err != nil {
		errs = append(errs, err)
	}
	if len(c.JWTSecret) < 16 {
		errs = append(errs, errors.New("JWT_SECRET_KEY 至少16个字符"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL 必须大于0"))
	}
	if c.Storage.UploadTTL <= 0 {
		errs = append(errs, errors.New("UPLOAD_URL_TTL 必须大于0"))
	}

	s := c.Storage
	switch s.Provider {
	case StorageAzure:
		if s.AzureAccount == "" || s.AzureKey == "" || s.AzureContainer == "" {
			errs = append(errs, errors.New("azure存储需要 AZURE_STORAGE_ACCOUNT、AZURE_STORAGE_KEY 和 AZURE_CONTAINER_RAW"))
		}
	case StorageMinio:
		if s.MinioEndpoint == "" || s.MinioAccessKey == "" || s.MinioSecretKey == "" || s.MinioBucket == "" {
			errs = append(errs, errors.New("minio存储需要 MINIO_ENDPOINT、MINIO_ACCESS_KEY、MINIO_SECRET_KEY 和 MINIO_BUCKET"))
		}
	case StorageS3:
		if s.S3Bucket == "" {
			errs = append(errs, errors.New("s3存储需要 S3_BUCKET"))
		}
	default:
		errs = append(errs, fmt.Errorf("不支持的 STORAGE_PROVIDER: %q", s.Provider))
	}
	return errors.Join(errs...)
}
