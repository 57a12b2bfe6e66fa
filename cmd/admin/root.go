package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/yatube/backend/conf"
	"github.com/yatube/backend/post"
	"github.com/yatube/backend/storage"
	"github.com/yatube/backend/user"
)

type adminApp struct {
	cfgPath     string
	logLevel    string
	logToFile   bool
	logFilePath string

	cfg   *conf.Config
	repos *storage.Repos
}

func newRootCmd() *cobra.Command {
	app := &adminApp{}

	rootCmd := &cobra.Command{
		Use:           "yatube-admin",
		Short:         "Admin CLI tool for yatube",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if err := InitializeLogger(app.logLevel, app.logToFile, app.logFilePath); err != nil {
				return err
			}
			cfg, err := conf.Read(app.cfgPath)
			if err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.repos != nil {
				app.repos.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.cfgPath, "config", "c", "yatube.toml", "Config file path")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "Log level")
	rootCmd.PersistentFlags().BoolVar(&app.logToFile, "log-to-file", false, "Write logs to --log-file")
	rootCmd.PersistentFlags().StringVar(&app.logFilePath, "log-file", "yatube-admin.log", "Log file path")

	rootCmd.AddCommand(newGroupCmd(app))
	rootCmd.AddCommand(newUserCmd(app))
	rootCmd.AddCommand(newPostCmd(app))

	return rootCmd
}

func (app *adminApp) openRepos(ctx context.Context) (*storage.Repos, error) {
	if app.repos != nil {
		return app.repos, nil
	}
	// storage reports through slog; the CLI only needs zerolog output
	repos, err := storage.Open(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), app.cfg.Storage)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("driver", app.cfg.Storage.Driver).Msg("storage opened")
	app.repos = repos
	return repos, nil
}

func (app *adminApp) userSrvc(ctx context.Context) (*user.UserSrvc, error) {
	repos, err := app.openRepos(ctx)
	if err != nil {
		return nil, err
	}
	return user.NewUserService(repos.Users), nil
}

func (app *adminApp) postSrvc(ctx context.Context) (*post.PostSrvc, error) {
	repos, err := app.openRepos(ctx)
	if err != nil {
		return nil, err
	}
	cfg := post.DefaultSrvcConfig()
	cfg.Limits = app.limits()
	return post.NewPostService(repos.Posts, repos.Groups, user.NewUserService(repos.Users), nil, nil, cfg), nil
}

func (app *adminApp) limits() post.Limits {
	return post.Limits{
		MaxTextLength: app.cfg.Posts.MaxTextLength,
		MaxWordLength: app.cfg.Posts.MaxWordLength,
	}
}
