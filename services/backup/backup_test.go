package backupsvc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dojanghq/dojang/core"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func writeSnapshot(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("-- dump"), 0o644); err != nil {
		t.Fatalf("writeSnapshot() failed: %v", err)
	}
}

func TestManager_prune(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "dojang_20230810_040000.sql")
	writeSnapshot(t, dir, "dojang_20230811_040000.sql")
	writeSnapshot(t, dir, "dojang_20230812_040000.sql")
	writeSnapshot(t, dir, "dojang_20230813_040000.sql")
	writeSnapshot(t, dir, "notes.txt") // not a snapshot, never pruned

	m := &Manager{conf: core.BackupConfig{Keep: 2}, logger: nopLogger{}}
	if err := m.prune(dir); err != nil {
		t.Fatalf("prune() error = %v", err)
	}

	left, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	if len(left) != 2 {
		t.Fatalf("got %d snapshots left, want 2: %v", len(left), left)
	}
	// the two newest survive
	for _, want := range []string{"dojang_20230812_040000.sql", "dojang_20230813_040000.sql"} {
		if _, err := os.Stat(filepath.Join(dir, want)); err != nil {
			t.Errorf("expected %s to survive: %v", want, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Errorf("non-snapshot file was pruned: %v", err)
	}
}

func TestManager_prune_retentionDisabled(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "dojang_20230810_040000.sql")
	writeSnapshot(t, dir, "dojang_20230811_040000.sql")

	m := &Manager{conf: core.BackupConfig{Keep: 0}, logger: nopLogger{}}
	if err := m.prune(dir); err != nil {
		t.Fatalf("prune() error = %v", err)
	}
	left, _ := filepath.Glob(filepath.Join(dir, "*.sql"))
	if len(left) != 2 {
		t.Errorf("got %d snapshots left, want 2", len(left))
	}
}

func TestManager_Snapshot_unknownKind(t *testing.T) {
	m := &Manager{logger: nopLogger{}}
	if _, err := m.Snapshot("hourly"); err == nil {
		t.Error("expected an error for an unknown snapshot kind")
	}
}

func TestManager_Start_badSchedule(t *testing.T) {
	m := &Manager{conf: core.BackupConfig{Schedule: "not a cron expr"}, logger: nopLogger{}}
	if _, err := m.Start(); err == nil {
		t.Error("expected an error for a bad cron expression")
	}
}
