package conf

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Env      string `toml:"env"` // "local" or "prod"
	LogLevel string `toml:"log_level"`
	JWTKey   string `toml:"-"`

	HTTP    HTTPConf    `toml:"http"`
	Storage StorageConf `toml:"storage"`
	Media   MediaConf   `toml:"media"`
	Events  EventsConf  `toml:"events"`
	Posts   PostsConf   `toml:"posts"`
	Otel    OtelConf    `toml:"otel"`
}

type HTTPConf struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

type StorageConf struct {
	Driver     string `toml:"driver"` // "postgres" or "sqlite"
	SQLitePath string `toml:"sqlite_path"`
}

type MediaConf struct {
	Driver    string `toml:"driver"` // "local" or "s3"
	Dir       string `toml:"dir"`
	PublicURL string `toml:"public_url"`
	S3Bucket  string `toml:"s3_bucket"`
	S3Region  string `toml:"s3_region"`
	// S3PublicURL replaces the bucket URL in image links when set.
	S3PublicURL string `toml:"s3_public_url"`
	MaxWidthPx  int    `toml:"max_width_px"`
}

type EventsConf struct {
	Driver      string `toml:"driver"` // "none", "sqs" or "nats"
	SQSQueueURL string `toml:"sqs_queue_url"`
	SQSRegion   string `toml:"sqs_region"`
	NatsURL     string `toml:"nats_url"`
}

type PostsConf struct {
	MaxTextLength     int `toml:"max_text_length"`
	MaxWordLength     int `toml:"max_word_length"`
	PageSize          int `toml:"page_size"`
	IndexCacheSeconds int `toml:"index_cache_seconds"`
}

type OtelConf struct {
	Endpoint string `toml:"endpoint"`
}

func Default() Config {
	return Config{
		Env:      "local",
		LogLevel: "info",
		HTTP: HTTPConf{
			Address:        ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Storage: StorageConf{
			Driver:     "sqlite",
			SQLitePath: "data/yatube.db",
		},
		Media: MediaConf{
			Driver:     "local",
			Dir:        "media",
			PublicURL:  "/media/",
			S3Region:   "eu-central-1",
			MaxWidthPx: 960,
		},
		Events: EventsConf{
			Driver:    "none",
			SQSRegion: "eu-central-1",
		},
		Posts: PostsConf{
			MaxTextLength:     2048,
			MaxWordLength:     128,
			PageSize:          10,
			IndexCacheSeconds: 20,
		},
	}
}

// Load builds the configuration from defaults, then the optional TOML file
// at path, then environment variables, and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for tools that need only part of the
// configuration.
func Read(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(content, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	setStr(&cfg.Env, "APP_ENV")
	setStr(&cfg.LogLevel, "LOG_LEVEL")
	setStr(&cfg.JWTKey, "JWT_KEY")
	setStr(&cfg.HTTP.Address, "HTTP_ADDRESS")
	if v := getEnv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(v, ",")
	}
	setStr(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setStr(&cfg.Storage.SQLitePath, "SQLITE_PATH")
	setStr(&cfg.Media.Driver, "MEDIA_DRIVER")
	setStr(&cfg.Media.Dir, "MEDIA_ROOT")
	setStr(&cfg.Media.PublicURL, "MEDIA_URL")
	setStr(&cfg.Media.S3Bucket, "MEDIA_S3_BUCKET")
	setStr(&cfg.Media.S3Region, "MEDIA_S3_REGION")
	setStr(&cfg.Media.S3PublicURL, "MEDIA_S3_PUBLIC_URL")
	setStr(&cfg.Events.Driver, "EVENTS_DRIVER")
	setStr(&cfg.Events.SQSQueueURL, "EVENTS_SQS_QUEUE_URL")
	setStr(&cfg.Events.SQSRegion, "EVENTS_SQS_REGION")
	setStr(&cfg.Events.NatsURL, "NATS_URL")
	setStr(&cfg.Otel.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")

	ints := []struct {
		dst *int
		key string
	}{
		{&cfg.Media.MaxWidthPx, "MEDIA_MAX_WIDTH_PX"},
		{&cfg.Posts.MaxTextLength, "POSTS_MAX_TEXT_LENGTH"},
		{&cfg.Posts.MaxWordLength, "POSTS_MAX_WORD_LENGTH"},
		{&cfg.Posts.PageSize, "POSTS_PAGE_SIZE"},
		{&cfg.Posts.IndexCacheSeconds, "POSTS_INDEX_CACHE_SECONDS"},
	}
	for _, i := range ints {
		v := getEnv(i.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", i.key, err)
		}
		*i.dst = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.JWTKey == "" {
		return errors.New("JWT_KEY is not set")
	}
	switch c.Storage.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Media.Driver {
	case "local":
	case "s3":
		if c.Media.S3Bucket == "" {
			return errors.New("media.s3_bucket is required for the s3 media driver")
		}
	default:
		return fmt.Errorf("unknown media driver %q", c.Media.Driver)
	}
	switch c.Events.Driver {
	case "none":
	case "sqs":
		if c.Events.SQSQueueURL == "" {
			return errors.New("events.sqs_queue_url is required for the sqs events driver")
		}
	case "nats":
		if c.Events.NatsURL == "" {
			return errors.New("events.nats_url is required for the nats events driver")
		}
	default:
		return fmt.Errorf("unknown events driver %q", c.Events.Driver)
	}
	if c.Posts.MaxTextLength <= 0 || c.Posts.MaxWordLength <= 0 {
		return errors.New("post length limits must be positive")
	}
	if c.Posts.PageSize <= 0 {
		return errors.New("posts.page_size must be positive")
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func setStr(dst *string, key string) {
	if v := getEnv(key); v != "" {
		*dst = v
	}
}
