package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"document-management-server/config"
	"document-management-server/internal/common"
	"document-management-server/internal/model"
	"document-management-server/internal/repository"
	"document-management-server/internal/security"
	"document-management-server/internal/util"

	"golang.org/x/term"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration")
	email := flag.String("email", "", "email of the administrator")
	name := flag.String("name", "Administrator", "display name used when the account is created")
	resetPassword := flag.Bool("reset-password", false, "also replace the password of an existing account")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email <email> [-name <name>] [-reset-password]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := util.SetupLogger(cfg.Server.Environment)

	db, err := config.SetupDatabase(cfg.DatabaseConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := run(context.Background(), db, strings.ToLower(strings.TrimSpace(*email)), strings.TrimSpace(*name), *resetPassword); err != nil {
		logger.Error("failed to provision administrator", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *config.Database, email, name string, resetPassword bool) error {
	tx := repository.NewTransactor(db)
	users := repository.NewUserRepository(db)

	exec, rollback, commit, err := tx.BeginTX(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = rollback() }()

	existing, err := users.FindByEmail(ctx, exec, email)
	switch {
	case errors.Is(err, common.ErrNotFound):
		password, err := promptPassword()
		if err != nil {
			return err
		}
		hash, err := security.HashPassword(password)
		if err != nil {
			return err
		}
		created, err := users.Create(ctx, exec, &model.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleAdmin,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created administrator %s (id=%d)\n", created.Email, created.ID)
	case err != nil:
		return err
	default:
		if err := users.UpdateRole(ctx, exec, existing.ID, model.RoleAdmin); err != nil {
			return err
		}
		if resetPassword {
			password, err := promptPassword()
			if err != nil {
				return err
			}
			hash, err := security.HashPassword(password)
			if err != nil {
				return err
			}
			if _, err := users.UpdatePassword(ctx, exec, existing.ID, hash); err != nil {
				return err
			}
		}
		fmt.Printf("promoted %s (id=%d) to administrator\n", existing.Email, existing.ID)
	}

	return commit()
}

// promptPassword : asks twice without echo and enforces the password policy
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		return password, security.ValidatePassword(password)
	}

	fmt.Print("Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Print("Repeat password: ")
	second, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	if err := security.ValidatePassword(string(first)); err != nil {
		return "", err
	}
	return string(first), nil
}
