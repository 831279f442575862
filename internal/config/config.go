package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	JWT         JWTConfig         `yaml:"jwt"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Storage     StorageConfig     `yaml:"storage"`
	MemberCache time.Duration     `yaml:"member_cache_ttl" env-default:"1m"`
}

type HTTPConfig struct {
	Host        string        `yaml:"host"`
	Port        string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type JWTConfig struct {
	Secret string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
}

const (
	DriverLocal = "local"
	DriverMinio = "minio"
)

type FileStorageConfig struct {
	Driver       string      `yaml:"driver" env-default:"local"`
	BaseDir      string      `yaml:"base_dir" env-default:"./uploads"`
	BaseURL      string      `yaml:"base_url"`
	UploadsRoute string      `yaml:"uploads_route" env-default:"/uploads"`
	MaxSize      int64       `yaml:"max_size" env-default:"10485760"`
	Minio        MinioConfig `yaml:"minio"`
}

type MinioConfig struct {
	Endpoint  string `yaml:"endpoint"`
	PublicURL string `yaml:"public_url"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env-default:"artworks"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type RedisConf struct {
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"`
	UnreadTTL     time.Duration `yaml:"unread_ttl" env-default:"5m"`
}

type RateLimitConfig struct {
	Enabled bool          `yaml:"enabled"`
	Limit   int           `yaml:"limit" env-default:"60"`
	Window  time.Duration `yaml:"window" env-default:"1m"`
}

type StorageConfig struct {
	AutoMigrate bool `yaml:"auto_migrate" env:"AUTO_MIGRATE"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
