// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/agritrace/agritrace-api/internal/auth"
	"github.com/agritrace/agritrace-api/internal/config"
	"github.com/agritrace/agritrace-api/internal/core"
	"github.com/agritrace/agritrace-api/internal/user"
)

// account describes one bootstrap user. Registration is Admin-only, so the
// first administrator has to be created out of band.
type account struct {
	name     string
	email    string
	password string
	role     string
	demo     bool
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	adminEmail := flag.String("admin-email", "admin@agritrace.local", "administrator email")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "administrator password")
	withDemo := flag.Bool("demo", true, "also create read-only demo accounts")
	demoPassword := flag.String("demo-password", "demo1234", "demo account password")
	flag.Parse()

	accounts := []account{{
		name:     "Administrator",
		email:    *adminEmail,
		password: *adminPassword,
		role:     user.RoleAdmin,
	}}
	if *withDemo {
		accounts = append(accounts,
			account{"Demo Admin", "demo.admin@agritrace.local", *demoPassword, user.RoleAdmin, true},
			account{"Demo Officer", "demo.officer@agritrace.local", *demoPassword, user.RoleFieldOfficer, true},
		)
	}

	if err := run(*configPath, accounts); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, accounts []account) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close() //nolint:errcheck // process exit
	}()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	users := user.NewService(user.NewRepository(db.DB))

	for _, a := range accounts {
		if len(a.password) < 6 {
			return fmt.Errorf("password for %s must be at least 6 characters", a.email)
		}

		hash, err := core.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created, err := users.Create(ctx, auth.NewUser{
			Name:         a.name,
			Email:        a.email,
			PasswordHash: hash,
			Role:         a.role,
			IsDemo:       a.demo,
		})
		if errors.Is(err, core.ErrDuplicateKey) {
			slog.Info("account exists, skipping", "email", a.email)
			continue
		}
		if err != nil {
			return fmt.Errorf("create %s: %w", a.email, err)
		}

		slog.Info("account created",
			"id", created.ID,
			"email", created.Email,
			"role", created.Role,
			"demo", created.IsDemo,
		)
	}

	return nil
}
