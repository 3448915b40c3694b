package database

import "testing"

func TestBackupArgs_NoFlagsAddsNoEmptyArg(t *testing.T) {
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "tomarket")
	t.Setenv("DB_BACKUP_FLAGS", "")

	args := backupArgs()
	for i, a := range args {
		if a == "" {
			t.Fatalf("empty argument at position %d: %q", i, args)
		}
	}
	if got := args[len(args)-1]; got != "tomarket" {
		t.Fatalf("expected database name last, got %q", got)
	}
	if args[3] != "3306" {
		t.Fatalf("expected default port 3306, got %q", args[3])
	}
}

func TestBackupArgs_SplitsExtraFlags(t *testing.T) {
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_NAME", "tomarket")
	t.Setenv("DB_BACKUP_FLAGS", "--no-tablespaces --set-gtid-purged=OFF")

	args := backupArgs()
	found := 0
	for _, a := range args {
		if a == "--no-tablespaces" || a == "--set-gtid-purged=OFF" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("expected both extra flags split into separate args, got %q", args)
	}
}
