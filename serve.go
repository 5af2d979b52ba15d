package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"ledquote/config"
	_ "ledquote/docs"
	"ledquote/handlers"
	"ledquote/services"
	"ledquote/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urfave/cli/v2"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "listen port, overrides PORT",
				EnvVars: []string{"LEDQUOTE_PORT"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c, false)
			if err != nil {
				return err
			}
			if p := c.String("port"); p != "" {
				cfg.Port = p
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			return serve(cfg)
		},
	}
}

// cronLogger routes robfig/cron's logs through zerolog.
type cronLogger struct {
	logger zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

// safeGo runs fn in a goroutine and logs a panic instead of crashing the server.
func safeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("job", name).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("job panicked")
			}
		}()
		fn()
	}()
}

func newRouter(cfg *config.Config, deps handlers.Dependencies) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(CORSConfig(cfg.AllowOrigins)))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version})
	})

	handlers.RegisterRoutes(r, deps)
	return r
}

func serve(cfg *config.Config) error {
	catalog, err := loadCatalog(cfg.PricingCatalogPath)
	if err != nil {
		return err
	}

	karlia := services.NewKarliaClient(cfg.Karlia)
	probe := services.NewKarliaProbe(karlia, utils.ProbeTimeout)
	if cfg.Karlia.APIKey == "" {
		log.Warn().Msg("KARLIA_API_KEY is not set, contact lookup is disabled")
	}
	if !cfg.SMTP.Enabled() {
		log.Warn().Msg("SMTP_HOST or SMTP_FROM is not set, quote emails are disabled")
	}

	deps := handlers.Dependencies{
		Engine:          services.NewQuoteEngine(catalog),
		Karlia:          karlia,
		Probe:           probe,
		Mailer:          services.NewQuoteMailer(cfg.SMTP, cfg.PublicURL),
		PublicURL:       cfg.PublicURL,
		UpstreamTimeout: cfg.Karlia.Timeout,
	}

	scheduler := cron.New(cron.WithLogger(cronLogger{logger: log.With().Str("component", "cron").Logger()}))
	if cfg.Karlia.APIKey != "" {
		if _, err := probe.Schedule(scheduler, cfg.Karlia.ProbeSchedule); err != nil {
			return err
		}
		safeGo("KarliaProbe", func() {
			status := probe.Run(context.Background())
			log.Info().Bool("ok", status.OK).Str("message", status.Message).Msg("initial KARLIA probe")
		})
	}
	scheduler.Start()

	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: newRouter(cfg, deps),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		scheduler.Stop()
		return err
	case <-quit:
	}
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
	defer cancel()

	// Wait for a probe in progress before closing connections.
	select {
	case <-scheduler.Stop().Done():
	case <-time.After(utils.ProbeTimeout):
	}

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("server exiting")
	return nil
}
