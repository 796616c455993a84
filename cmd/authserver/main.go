// Command authserver serves the session endpoints over a SQLite user store.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/sessionauth/auth"
	"github.com/kbukum/sessionauth/auth/authctx"
	"github.com/kbukum/sessionauth/bootstrap"
	"github.com/kbukum/sessionauth/config"
	"github.com/kbukum/sessionauth/database"
	"github.com/kbukum/sessionauth/logger"
	"github.com/kbukum/sessionauth/observability"
	"github.com/kbukum/sessionauth/server"
	"github.com/kbukum/sessionauth/server/endpoint"
	"github.com/kbukum/sessionauth/store"
	"github.com/kbukum/sessionauth/version"
)

const serviceName = "authserver"

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: search standard locations)")
	envFile := flag.String("env", "", "path to .env file (default: search standard locations)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.GetVersionInfo().String())
		return
	}

	if err := run(context.Background(), *configFile, *envFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile, envFile string) error {
	var cfg Config
	var opts []config.LoaderOption
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return err
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	app.OnConfigure(configure)
	return app.Run(ctx)
}

// configure wires telemetry, storage, auth and the HTTP server.
func configure(ctx context.Context, app *bootstrap.App[*Config]) error {
	cfg := app.Cfg

	shutdownTelemetry, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		return fmt.Errorf("observability: %w", err)
	}
	app.OnStop(shutdownTelemetry)

	metrics, err := observability.NewMetrics(observability.Meter(serviceName))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	db, err := database.Open(ctx, cfg.Database, app.Logger)
	if err != nil {
		return err
	}
	app.OnStop(func(context.Context) error { return db.Close() })
	app.AddReadyCheck("database", db.PingContext)

	users := store.NewGorm(db)
	if cfg.Database.AutoMigrate {
		if err := users.Migrate(); err != nil {
			return fmt.Errorf("migrate users: %w", err)
		}
	}

	authCfg := cfg.Auth
	authCfg.Store = users.Store()
	authCfg.Logger = app.Logger.WithComponent("auth")
	authCfg.Metrics = metrics
	authn, err := auth.New(authCfg)
	if err != nil {
		return err
	}
	app.Logger.Info("Auth configured", logger.Fields("auth", authCfg.Describe()))

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, endpoint.Check{Name: "database", Fn: db.PingContext})

	engine := srv.GinEngine()
	authn.RegisterRoutes(engine.Group("/auth"))
	api := engine.Group("/api", authn.Authenticate(), authn.RequireAuth())
	api.GET("/profile", profile)

	app.OnReady(srv.Start)
	app.OnStop(srv.Stop)
	return nil
}

// profile echoes the authenticated caller.
func profile(c *gin.Context) {
	id, _ := authctx.FromGin(c)
	user := auth.PublicUser{ID: id.Subject}
	if id.User != nil {
		user = auth.ToPublic(id.User)
	}
	c.JSON(http.StatusOK, auth.UserResponse{Success: true, User: user})
}
