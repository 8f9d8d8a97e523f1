package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "shareit-backend/docs"
	"shareit-backend/internal/bookings"
	"shareit-backend/internal/items"
	"shareit-backend/internal/platform/auth"
	"shareit-backend/internal/platform/clock"
	"shareit-backend/internal/platform/db"
	"shareit-backend/internal/platform/logging"
	"shareit-backend/internal/platform/validation"
	"shareit-backend/internal/requests"
	"shareit-backend/internal/users"
)

func main() {
	// 設定読み込み
	cfg, err := db.LoadConfig(db.ConfigPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, cfg.Server.LogLevel)

	// go run . token <user_id> [ttl]
	if len(os.Args) > 1 && os.Args[1] == "token" {
		if err := issueToken(cfg, os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	if cfg.Mode != "dev" && cfg.Mode != "release" {
		fmt.Println("Usage: mode must be dev or release")
		os.Exit(2)
	}
	logger.Info("starting", "mode", cfg.Mode, "version", cfg.Version)

	conn, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("connect db", "err", err)
		os.Exit(1)
	}
	defer conn.Close()
	logger.Info("connected to DB", "driver", cfg.DB.Driver, "dbname", cfg.DB.DBName, "path", cfg.DB.Path)

	if err := db.Migrate(context.Background(), conn); err != nil {
		logger.Error("migrate", "err", err)
		os.Exit(1)
	}

	validation.Register()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(logging.Middleware(logger), gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	if cfg.Mode == "dev" {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", cfg.Auth.UserHeader},
			ExposeHeaders:    []string{"Content-Length", "Location", logging.RequestIDHeader},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowCredentials: true,
		}))
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) {
		if err := conn.PingContext(c.Request.Context()); err != nil {
			c.String(http.StatusServiceUnavailable, "db unavailable")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	clk := clock.Real{}
	users.RegisterRoutes(r, users.NewService(conn))

	sharer := r.Group("/", auth.RequireUser(auth.Options{
		Secret:     []byte(cfg.Auth.JWTSecret),
		UserHeader: cfg.Auth.UserHeader,
	}))
	items.RegisterRoutes(sharer, items.NewService(conn, clk))
	bookings.RegisterRoutes(sharer, bookings.NewService(conn, clk))
	requests.RegisterRoutes(sharer, requests.NewService(conn, clk))

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 証明書が設定されていれば TLS
	tls := cfg.Certificate.Cert != "" && cfg.Certificate.Key != ""
	go func() {
		var err error
		if tls {
			logger.Info("listening (TLS)", "addr", srv.Addr)
			err = srv.ListenAndServeTLS(cfg.Certificate.Cert, cfg.Certificate.Key)
		} else {
			logger.Info("listening", "addr", srv.Addr)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

func issueToken(cfg *db.Config, args []string) error {
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is not configured")
	}
	if len(args) < 1 {
		return errors.New("usage: token <user_id> [ttl]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid user id %q", args[0])
	}
	ttl := 24 * time.Hour
	if len(args) > 1 {
		if ttl, err = time.ParseDuration(args[1]); err != nil {
			return fmt.Errorf("invalid ttl: %w", err)
		}
	}
	tok, err := auth.IssueToken([]byte(cfg.Auth.JWTSecret), id, ttl, time.Now())
	if err != nil {
		return err
	}
	slog.Debug("token issued", "user_id", id, "ttl", ttl.String())
	fmt.Println(tok)
	return nil
}
