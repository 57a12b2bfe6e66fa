package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/yatube/backend/conf"
	"github.com/yatube/backend/http"
	"github.com/yatube/backend/localmedia"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/post"
	posthttp "github.com/yatube/backend/post/http"
	"github.com/yatube/backend/postevents"
	"github.com/yatube/backend/s3bucket"
	"github.com/yatube/backend/storage"
	"github.com/yatube/backend/user"
	userhttp "github.com/yatube/backend/user/http"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

func main() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("failed to load .env file", "error", err)
		os.Exit(1)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "yatube.toml"
	}
	cfg, err := conf.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(log, cfg); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, cfg *conf.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Otel.Endpoint != "" {
		tp, err := initTracer(ctx, cfg)
		if err != nil {
			log.Error("failed to init tracer", "error", err)
		} else {
			defer func() { _ = tp.Shutdown(context.Background()) }()
		}
	}

	repos, err := storage.Open(ctx, log, cfg.Storage)
	if err != nil {
		return err
	}
	defer repos.Close()

	images, mediaDir, err := newImageStore(ctx, cfg.Media)
	if err != nil {
		return err
	}

	events, closeEvents, err := newEventPublisher(ctx, log, cfg.Events)
	if err != nil {
		return err
	}
	defer closeEvents()

	userSrvc := user.NewUserService(repos.Users)
	postSrvc := post.NewPostService(repos.Posts, repos.Groups, userSrvc, images, events, post.SrvcConfig{
		Limits: post.Limits{
			MaxTextLength: cfg.Posts.MaxTextLength,
			MaxWordLength: cfg.Posts.MaxWordLength,
		},
		PageSize:      cfg.Posts.PageSize,
		MaxImageWidth: uint(max(cfg.Media.MaxWidthPx, 0)),
	})

	jwtKey := []byte(cfg.JWTKey)
	server := http.NewHttpServer(log, http.Options{
		Env:            cfg.Env,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		JwtKey:         jwtKey,
		MediaDir:       mediaDir,
		MediaPath:      mediaPath(cfg.Media.PublicURL),
		StatsInterval:  time.Minute,
	},
		userhttp.NewUserHttpHandler(userSrvc, jwtKey),
		posthttp.NewPostHttpHandler(postSrvc, time.Duration(cfg.Posts.IndexCacheSeconds)*time.Second),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.HTTP.Address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}

// newImageStore returns the local media dir to serve when images are kept
// on disk.
func newImageStore(ctx context.Context, cfg conf.MediaConf) (post.ImageStore, string, error) {
	switch cfg.Driver {
	case "s3":
		bucket, err := s3bucket.NewS3Bucket(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			return nil, "", err
		}
		return bucket, "", nil
	default:
		dir, err := localmedia.NewDir(cfg.Dir, cfg.PublicURL)
		if err != nil {
			return nil, "", err
		}
		return dir, dir.Root(), nil
	}
}

func newEventPublisher(ctx context.Context, log *slog.Logger, cfg conf.EventsConf) (post.EventPublisher, func(), error) {
	switch cfg.Driver {
	case "sqs":
		pub, err := postevents.NewSqsPublisher(ctx, cfg.SQSRegion, cfg.SQSQueueURL)
		if err != nil {
			return nil, nil, err
		}
		return pub, func() {}, nil
	case "nats":
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		log.Info("connected to nats", "url", cfg.NatsURL)
		return postevents.NewNatsPublisher(nc), nc.Close, nil
	default:
		return nil, func() {}, nil
	}
}

// mediaPath is the path part of the public media URL.
func mediaPath(publicURL string) string {
	u, err := url.Parse(publicURL)
	if err != nil || u.Path == "" {
		return "/media/"
	}
	return u.Path
}

func initTracer(ctx context.Context, cfg *conf.Config) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Otel.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, _ := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String("yatube"),
			semconv.DeploymentEnvironmentKey.String(cfg.Env),
		),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, nil
}
