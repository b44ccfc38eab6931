package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"publicator/app/config"
	"publicator/app/repositories"
	"publicator/app/repositories/postgres"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	cleanYes   bool
	restoreYes bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new empty database",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup of the badger database",
	Args:  cobra.NoArgs,
	RunE:  runBackup,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore the badger database from a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runRestore,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the badger database",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token <token>",
	Short: "Print the bcrypt hash to use as auth.token_hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash token: %w", err)
		}
		cmd.Println(string(hash))
		return nil
	},
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanYes, "yes", "y", false, "skip the confirmation prompt")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "replace an existing database without asking")

	rootCmd.AddCommand(initCmd, backupCmd, restoreCmd, cleanCmd, hashTokenCmd)
}

// confirm asks a yes/no question on the command's input; anything but y is a no
func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N] ", question)
	var response string
	_, _ = fmt.Fscanln(cmd.InOrStdin(), &response)
	return strings.EqualFold(strings.TrimSpace(response), "y")
}

func badgerConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Storage.Driver != config.DriverBadger {
		return config.Config{}, fmt.Errorf("command requires the badger driver, configured driver is %q", cfg.Storage.Driver)
	}
	return cfg, nil
}

func dbExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		cmd.Println("Database schema migrated successfully")
		return nil
	case config.DriverMemory:
		cmd.Println("Memory driver has nothing to initialize")
		return nil
	}

	path := cfg.Storage.BadgerPath
	if dbExists(path) {
		cmd.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	repo, err := repositories.NewRepository(path)
	if err != nil {
		return err
	}
	if err := repo.Close(); err != nil {
		return err
	}

	cmd.Println("Database initialized successfully")
	return nil
}

func runBackup(cmd *cobra.Command, _ []string) error {
	cfg, err := badgerConfig()
	if err != nil {
		return err
	}
	if !dbExists(cfg.Storage.BadgerPath) {
		return errors.New("no database exists to backup")
	}

	if err := os.MkdirAll(cfg.Storage.BackupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	repo, err := repositories.NewRepository(cfg.Storage.BadgerPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	backupFile := filepath.Join(cfg.Storage.BackupDir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	defer f.Close()

	if _, err := repo.Backup(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync backup file: %w", err)
	}

	cmd.Printf("Database backed up successfully to %s\n", backupFile)
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	cfg, err := badgerConfig()
	if err != nil {
		return err
	}
	backupFile := args[0]

	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	path := cfg.Storage.BadgerPath
	if dbExists(path) {
		if !restoreYes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
			cmd.Println("Operation cancelled")
			return nil
		}
		if err := os.RemoveAll(path); err != nil {
			return fmt.Errorf("remove existing database: %w", err)
		}
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("open backup file: %w", err)
	}
	defer f.Close()

	repo, err := repositories.NewRepository(path)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Restore(f); err != nil {
		return err
	}

	cmd.Printf("Database restored successfully from %s\n", backupFile)
	return nil
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := badgerConfig()
	if err != nil {
		return err
	}
	path := cfg.Storage.BadgerPath

	if !dbExists(path) {
		cmd.Println("Database is already clean (does not exist)")
		return nil
	}

	if !cleanYes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
		cmd.Println("Operation cancelled")
		return nil
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("clean database: %w", err)
	}
	cmd.Println("Database cleaned successfully")
	return nil
}
