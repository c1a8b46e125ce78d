package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/inkwell/inkwell-go/internal/config"
	"github.com/inkwell/inkwell-go/internal/handler"
	"github.com/inkwell/inkwell-go/internal/mail"
	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/repository"
	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := repository.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	uploads, err := storage.NewUploadStore(cfg.UploadDir)
	if err != nil {
		slog.Error("upload store init failed", "error", err)
		os.Exit(1)
	}

	render, err := handler.NewRenderer()
	if err != nil {
		slog.Error("template init failed", "error", err)
		os.Exit(1)
	}

	mailer, err := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom, cfg.BaseURL)
	if err != nil {
		slog.Error("mailer init failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	resetRepo := repository.NewResetTokenRepository(db)

	authService := service.NewAuthService(userRepo)
	postService := service.NewPostService(postRepo)
	resetService := service.NewResetService(resetRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService, render, cfg.SessionSecret)
	postHandler := handler.NewPostHandler(postService, uploads, render)
	resetHandler := handler.NewResetHandler(resetService, mailer, render)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.CurrentUser(cfg.SessionSecret, authService))

	r.Get("/", postHandler.Index)
	r.Get("/signup", authHandler.ShowSignup)
	r.Post("/signup", authHandler.HandleSignup)
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.HandleLogin)
	r.Get("/forgot_password", resetHandler.ShowForgot)
	r.Post("/forgot_password", resetHandler.HandleForgot)
	r.Get("/reset_password/{token}", resetHandler.ShowReset)
	r.Post("/reset_password/{token}", resetHandler.HandleReset)
	r.Get("/uploads/{filename}", postHandler.ServeUpload)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/logout", authHandler.HandleLogout)
		r.Get("/create_post", postHandler.ShowCreate)
		r.Post("/create_post", postHandler.HandleCreate)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
