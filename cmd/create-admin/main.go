// Command create-admin provisions an admin account. Public registration
// refuses the admin role unless ALLOW_ADMIN_REGISTRATION is set, so this is
// how the first admin is created.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/jobconnect/jobconnect-go/internal/config"
	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/repository"
	"github.com/jobconnect/jobconnect-go/internal/service"
)

func main() {
	name := flag.String("name", "Administrator", "display name")
	email := flag.String("email", "", "login email (required)")
	length := flag.Int("length", 20, "length of the generated password")
	flag.Parse()

	if *email == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -email admin@example.com [-name NAME] [-length N]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ADMIN_PASSWORD wins over a generated one.
	password := os.Getenv("ADMIN_PASSWORD")
	generated := password == ""
	if generated {
		if password, err = crypto.GeneratePassword(*length); err != nil {
			slog.Error("generating password", "error", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	tokens, err := crypto.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		slog.Error("token service setup failed", "error", err)
		os.Exit(1)
	}

	svc := service.NewAuthService(repository.NewUserRepository(db), tokens, false)
	user, err := svc.CreateAdmin(ctx, *name, *email, password)
	if err != nil {
		slog.Error("creating admin", "email", *email, "error", err)
		os.Exit(1)
	}

	slog.Info("admin created", "user_id", user.ID, "email", user.Email)
	if generated {
		fmt.Printf("password: %s\n", password)
	}
}
