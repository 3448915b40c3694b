package database

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"gorm.io/gorm"
)

// backupArgs builds the mysqldump argument list from the same DB_* env vars
// the connection pool uses. DB_BACKUP_FLAGS appends extra flags, whitespace
// separated; when unset nothing is appended.
func backupArgs() []string {
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	args := []string{
		"-h", os.Getenv("DB_HOST"),
		"-P", port,
		"-u", os.Getenv("DB_USER"),
		"--single-transaction",
	}
	args = append(args, strings.Fields(os.Getenv("DB_BACKUP_FLAGS"))...)
	return append(args, os.Getenv("DB_NAME"))
}

// BackupDatabase dumps the configured database with mysqldump to outPath.
// The password travels via MYSQL_PWD so it never shows up in the process
// list.
func BackupDatabase(outPath string) error {
	if _, err := exec.LookPath("mysqldump"); err != nil {
		return fmt.Errorf("mysqldump not found in PATH: %w", err)
	}
	if os.Getenv("DB_NAME") == "" {
		return fmt.Errorf("DB_NAME is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(ctx, "mysqldump", backupArgs()...)
	cmd.Env = append(os.Environ(), "MYSQL_PWD="+os.Getenv("DB_PASS"))

	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	cmd.Stdout = outFile
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump failed: %w", err)
	}
	return nil
}

// RunMigrationsWithBackup runs AutoMigrate for the given models. When
// DB_BACKUP_PATH is set the dump must finish before the schema is touched;
// a failed dump aborts the migration.
func RunMigrationsWithBackup(db *gorm.DB, models ...interface{}) error {
	if backupPath := os.Getenv("DB_BACKUP_PATH"); backupPath != "" {
		if err := BackupDatabase(backupPath); err != nil {
			return fmt.Errorf("pre-migration backup: %w", err)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.AutoMigrate(models...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
