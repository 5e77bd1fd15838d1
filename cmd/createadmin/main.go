package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningBooking/internal/config"
	adminRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/admin"
	authService "github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
	"github.com/m04kA/SMC-CleaningBooking/internal/service/auth/models"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
)

// envAdminPassword пароль берём из окружения, чтобы он не попадал в историю shell
const envAdminPassword = "ADMIN_PASSWORD"

// createadmin заводит учётную запись администратора:
//
//	ADMIN_PASSWORD=... go run ./cmd/createadmin -name "Owner" -email owner@example.com
func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	name := flag.String("name", "", "admin name")
	email := flag.String("email", "", "admin email")
	flag.Parse()

	if err := run(*configPath, *name, *email, os.Getenv(envAdminPassword)); err != nil {
		fmt.Fprintf(os.Stderr, "createadmin: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, name, email, password string) error {
	if password == "" {
		return fmt.Errorf("%s is not set", envAdminPassword)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New("", cfg.Logs.Level)
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	svc := authService.NewService(adminRepo.NewRepository(dbmetrics.Wrap(db, nil)), authService.Config{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL(),
		Issuer:   cfg.Auth.Issuer,
	}, log)

	admin, err := svc.Register(ctx, &models.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			return fmt.Errorf("admin %s already exists", email)
		}
		return err
	}

	fmt.Printf("admin created: id=%d email=%s\n", admin.ID, admin.Email)
	return nil
}
