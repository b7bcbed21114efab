package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/focusmode/focusmode/internal/api"
	"github.com/focusmode/focusmode/internal/config"
	"github.com/focusmode/focusmode/internal/services"
	"github.com/focusmode/focusmode/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(env *runtimeEnv) *cobra.Command {
	var (
		addr     string
		timezone string
		storeArg storageFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API and the reminder worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := env.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("timezone") {
				cfg.Timezone = timezone
			}
			storeArg.apply(cmd, cfg)
			if err := validated(cfg); err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, env.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, for example :8080")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA time zone for daily statistics")
	storeArg.register(cmd)
	return cmd
}

func runServe(parent context.Context, cfg *config.Config, logger *zap.Logger) error {
	if parent == nil {
		parent = context.Background()
	}
	generated, err := cfg.EnsureSecret()
	if err != nil {
		return err
	}
	if generated {
		logger.Warn("FOCUSMODE_SECRET is not set; using an ephemeral secret, tokens will not survive a restart")
	}

	store, err := openStore(parent, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close storage failed", zap.Error(err))
		}
	}()

	app, err := newApp(store, cfg, logger)
	if err != nil {
		return err
	}

	sigCtx, stopSignals := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	group, ctx := errgroup.WithContext(sigCtx)

	group.Go(func() error {
		logger.Info("FocusMode listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("tz", cfg.Timezone),
		)
		return app.Listen(cfg.Server.Addr)
	})

	if cfg.Reminders.Enabled {
		reminders := services.NewReminderService(
			store.Users(),
			store.Sessions(),
			newNotifier(cfg, logger),
			cfg.Location(),
			cfg.Reminders.Hour,
			cfg.Reminders.Interval,
			logger,
		)
		group.Go(func() error {
			return reminders.Run(ctx)
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited", zap.Error(err))
		return err
	}
	return nil
}

func newApp(store storage.Store, cfg *config.Config, logger *zap.Logger) (*fiber.App, error) {
	handler, err := api.NewHandler(store, api.Options{
		Secret:   []byte(cfg.Auth.Secret),
		TokenTTL: cfg.Auth.TokenTTL,
		Location: cfg.Location(),
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "FocusMode",
		DisableStartupMessage: true,
		ErrorHandler:          api.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(api.RequestLogger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app, nil
}

func newNotifier(cfg *config.Config, logger *zap.Logger) services.Notifier {
	if cfg.TelegramConfigured() {
		return services.NewTelegramNotifier(cfg.Reminders.TelegramBotToken, cfg.Reminders.TelegramChatID)
	}
	return services.NewLogNotifier(logger.Named("reminders"))
}
