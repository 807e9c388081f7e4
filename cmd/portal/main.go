package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"hrportal/backend/foundation/web"
	"hrportal/backend/internal/auth"
	"hrportal/backend/internal/commands"
	"hrportal/backend/internal/pkg/config"
	"hrportal/backend/internal/pkg/repository/postgresql"
	"hrportal/backend/internal/router"
	"hrportal/backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			return
		}
		log.Fatalln("main: error:", err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("main: no .env file loaded")
	}

	var cfg struct {
		Args conf.Args
		Web struct {
			Addr            string        `conf:"default:0.0.0.0:8080"`
			ReadTimeout     time.Duration `conf:"default:10s"`
			WriteTimeout    time.Duration `conf:"default:30s"`
			ShutdownTimeout time.Duration `conf:"default:10s"`
			AllowedOrigins  []string
		}
		Uploads struct {
			Dir      string `conf:"default:./media"`
			MaxBytes int64  `conf:"default:2097152"`
		}
		DB struct {
			LockTimeout time.Duration `conf:"default:5s"`
			Debug       bool          `conf:"default:false"`
		}
		Auth struct {
			AccessTTL  time.Duration `conf:"default:12h"`
			RefreshTTL time.Duration `conf:"default:168h"`
		}
		Config string `conf:"default:config.yaml"`
	}

	if err := conf.Parse(os.Args[1:], "PORTAL", &cfg); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("PORTAL", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	out, err := conf.String(&cfg)
	if err != nil {
		return errors.Wrap(err, "generating config for output")
	}
	log.Printf("main: config:\n%v\n", out)

	file, err := config.Load(cfg.Config)
	if err != nil {
		return err
	}

	loc, err := file.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	db, err := postgresql.New(postgresql.Config{
		User:        file.DBUsername,
		Password:    file.DBPassword,
		Host:        file.DBHost,
		Port:        file.DBPort,
		Name:        file.DBName,
		DisableTLS:  file.DisableTLS,
		LockTimeout: cfg.DB.LockTimeout,
		Debug:       cfg.DB.Debug,
	})
	if err != nil {
		return err
	}
	defer func() {
		log.Println("main: closing database")
		if err := db.Close(); err != nil {
			log.Println("main: closing database:", err)
		}
	}()

	if cfg.Args.Num(0) == "migrate" {
		return commands.MigrateUP(context.Background(), db, loc)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     file.RedisAddr,
		Password: file.RedisPass,
		DB:       file.RedisDB,
	})
	defer rdb.Close()

	tokens, err := auth.New(auth.Config{
		Key:        file.JWTKey,
		AccessTTL:  cfg.Auth.AccessTTL,
		RefreshTTL: cfg.Auth.RefreshTTL,
	}, auth.NewRedisRevoker(rdb))
	if err != nil {
		return errors.Wrap(err, "constructing auth")
	}

	if cfg.Uploads.MaxBytes <= 0 {
		cfg.Uploads.MaxBytes = service.MaxImageBytes
	}

	app := web.NewApp()
	router.NewRouter(app, db, rdb, tokens, cfg.Uploads.Dir, cfg.Web.AllowedOrigins, cfg.Uploads.MaxBytes, now).Init()

	srv := http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      app,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Printf("main: API listening on %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		log.Printf("main: %v: start shutdown", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}

	return nil
}
