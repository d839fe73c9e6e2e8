// @title			Portfolio API
// @version		1.0
// @description	Asset router and site API for the portfolio.
// @BasePath		/api/v1

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/urfave/cli/v2"

	"github.com/mtlprog/portfolio/internal/config"
	"github.com/mtlprog/portfolio/internal/database"
	"github.com/mtlprog/portfolio/internal/domain"
	"github.com/mtlprog/portfolio/internal/handler"
	"github.com/mtlprog/portfolio/internal/logger"
	"github.com/mtlprog/portfolio/internal/repository"
	"github.com/mtlprog/portfolio/internal/router"
	"github.com/mtlprog/portfolio/internal/service"
	"github.com/mtlprog/portfolio/internal/static"
	"github.com/mtlprog/portfolio/internal/store"
)

func main() {
	app := &cli.App{
		Name:  "portfolio",
		Usage: "Portfolio site server with SPA asset routing",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   config.DefaultLogFormat,
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Value:   config.DefaultDatabaseURL,
				Usage:   "PostgreSQL database URL holding the assets table",
				EnvVars: []string{"DATABASE_URL"},
			},
		}, serveFlags()...),
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")), c.String("log-format"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server",
				Flags:  serveFlags(),
				Action: runServe,
			},
			{
				Name:  "sync",
				Usage: "Upload a site directory into the assets table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Site directory to upload",
						EnvVars:  []string{"ASSETS_DIR"},
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "Delete stored assets missing from the directory",
					},
					&cli.Int64Flag{
						Name:  "max-asset-size",
						Value: service.DefaultMaxAssetSize,
						Usage: "Largest accepted file in bytes",
					},
				},
				Action: runSync,
			},
			{
				Name:  "migrate",
				Usage: "Apply (or with --down, roll back one) database migration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "down",
						Usage: "Roll back the most recent migration",
					},
				},
				Action: runMigrate,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Value:   config.DefaultPort,
			Usage:   "HTTP server port",
			EnvVars: []string{"PORT"},
		},
		&cli.StringFlag{
			Name:    "origin-url",
			Usage:   "Serve assets from this HTTP origin (bucket or CDN)",
			EnvVars: []string{"ASSETS_ORIGIN"},
		},
		&cli.StringFlag{
			Name:    "assets-dir",
			Usage:   "Serve assets from this local directory",
			EnvVars: []string{"ASSETS_DIR"},
		},
		&cli.BoolFlag{
			Name:    "embedded",
			Value:   true,
			Usage:   "Serve the embedded default site when no other store is configured",
			EnvVars: []string{"ASSETS_EMBEDDED"},
		},
		&cli.StringFlag{
			Name:    "github-username",
			Usage:   "Account whose contribution stats are shown; empty disables the endpoint",
			EnvVars: []string{"GITHUB_USERNAME"},
		},
		&cli.DurationFlag{
			Name:    "contributions-ttl",
			Value:   config.DefaultContributionsTTL,
			Usage:   "How long contribution stats are cached (at least 1m)",
			EnvVars: []string{"CONTRIBUTIONS_TTL"},
		},
		&cli.StringFlag{
			Name:    "admin-token",
			Usage:   "Bearer token for /debug/metrics; empty disables it",
			EnvVars: []string{"ADMIN_TOKEN"},
		},
		&cli.BoolFlag{
			Name:  "no-preflight",
			Usage: "Forward OPTIONS requests to the store instead of answering them",
		},
		&cli.BoolFlag{
			Name:  "no-robots",
			Usage: "Serve /robots.txt from the store",
		},
		&cli.BoolFlag{
			Name:  "no-cors",
			Usage: "Do not add CORS headers to asset responses",
		},
		&cli.BoolFlag{
			Name:  "keep-security-headers",
			Usage: "Keep X-Frame-Options and Content-Security-Policy from the store",
		},
		&cli.BoolFlag{
			Name:  "buffer-body",
			Usage: "Buffer asset bodies and set Content-Length",
		},
	}
}

func routerOptions(c *cli.Context) router.Options {
	opts := router.DefaultOptions()
	opts.EnablePreflight = !c.Bool("no-preflight")
	opts.EnableRobotsTxt = !c.Bool("no-robots")
	opts.InjectCORSHeaders = !c.Bool("no-cors")
	opts.StripSecurityHeaders = !c.Bool("keep-security-headers")
	opts.BufferBody = c.Bool("buffer-body")
	return opts
}

// openStore binds the asset store: database, then origin, then directory, then
// the embedded site. It returns a nil Store when none is configured.
func openStore(c *cli.Context) (router.Store, string, func(), error) {
	noop := func() {}

	if databaseURL := c.String("database-url"); databaseURL != "" {
		db, err := database.New(c.Context, databaseURL)
		if err != nil {
			return nil, "", noop, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(c.Context, db.Pool()); err != nil {
			db.Close()
			return nil, "", noop, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store.NewDBStore(repository.NewAssetRepository(db.Pool())), "database", db.Close, nil
	}

	if originURL := c.String("origin-url"); originURL != "" {
		s, err := store.NewOriginStore(originURL, nil)
		if err != nil {
			return nil, "", noop, err
		}
		return s, "origin", noop, nil
	}

	if dir := c.String("assets-dir"); dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, "", noop, fmt.Errorf("assets dir: %w", err)
		}
		if !info.IsDir() {
			return nil, "", noop, fmt.Errorf("assets dir %s is not a directory", dir)
		}
		return store.NewFSStore(os.DirFS(dir)), "directory", noop, nil
	}

	if c.Bool("embedded") {
		return store.NewFSStore(static.Site()), "embedded", noop, nil
	}

	return nil, "", noop, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	if ttl := c.Duration("contributions-ttl"); ttl <= 0 {
		return fmt.Errorf("contributions-ttl must be positive, got %s", ttl)
	}

	assets, storeName, closeStore, err := openStore(c)
	if err != nil {
		return err
	}
	defer closeStore()

	if assets == nil {
		slog.Warn("no asset store configured; asset requests will fail", "error", domain.ErrAssetsNotConfigured)
	} else {
		slog.Info("asset store bound", "store", storeName)
	}

	registry := metrics.NewRegistry()
	client := &http.Client{Timeout: config.DefaultProviderTimeout}
	contributions := service.NewContributionService(
		c.String("github-username"),
		[]service.ContributionProvider{
			service.NewJogruberProvider(service.DefaultJogruberURL, client),
			service.NewVercelProvider(service.DefaultVercelURL, client),
		},
		c.Duration("contributions-ttl"),
		registry,
	)

	h := handler.New(handler.Deps{
		Router:        router.New(assets, routerOptions(c), registry),
		Store:         assets,
		StoreName:     storeName,
		Contributions: contributions,
		Themes:        service.NewThemeService(domain.ThemeDark),
		Registry:      registry,
		AdminToken:    c.String("admin-token"),
	})

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runSync(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return errors.New("sync requires --database-url")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	syncService := service.NewSyncService(
		db.Pool(),
		repository.NewAssetRepository(db.Pool()),
		service.NewValidator(c.Int64("max-asset-size")),
	)

	result, err := syncService.SyncDir(ctx, os.DirFS(c.String("dir")), c.Bool("prune"))
	if err != nil {
		return fmt.Errorf("sync assets: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "uploaded %d, unchanged %d, deleted %d\n", result.Uploaded, result.Unchanged, result.Deleted)
	return nil
}

func runMigrate(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")
	if databaseURL == "" {
		return errors.New("migrate requires --database-url")
	}

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if c.Bool("down") {
		return database.RollbackMigration(ctx, db.Pool())
	}
	return database.RunMigrations(ctx, db.Pool())
}
