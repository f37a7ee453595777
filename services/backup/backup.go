package backupsvc

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/dojanghq/dojang/core"
)

const (
	KindAuto   = "auto"
	KindManual = "manual"
)

// Manager takes timestamped database snapshots with pg_dump and prunes old
// ones. Auto and manual snapshots live in separate subdirectories and are
// pruned independently.
type Manager struct {
	conf   core.BackupConfig
	db     core.DatabaseConfig
	logger core.Logger
}

func NewManager(conf *core.Config, logger core.Logger) *Manager {
	return &Manager{conf: conf.Backup, db: conf.Database, logger: logger}
}

// Snapshot dumps the database into the kind's directory and prunes snapshots
// beyond the retention count. It returns the path of the file written.
func (m *Manager) Snapshot(kind string) (string, error) {
	if kind != KindAuto && kind != KindManual {
		return "", errors.Errorf("unknown snapshot kind %q", kind)
	}
	dir := filepath.Join(m.conf.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "backup.MkdirAll")
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.sql", m.db.Name, time.Now().Format("20060102_150405")))
	cmd := exec.Command(
		m.conf.PgDumpCommand,
		"--host", m.db.Host,
		"--port", fmt.Sprint(m.db.Port),
		"--username", m.db.User,
		"--dbname", m.db.Name,
		"--file", path,
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+m.db.Password)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "backup.pg_dump: %s", out)
	}
	m.logger.Info(fmt.Sprintf("backup: snapshot written to %s", path))

	if err := m.prune(dir); err != nil {
		return "", err
	}
	return path, nil
}

// prune deletes the oldest snapshots past the retention count.
func (m *Manager) prune(dir string) error {
	if m.conf.Keep <= 0 {
		return nil
	}
	entries, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return errors.Wrap(err, "backup.Glob")
	}
	if len(entries) <= m.conf.Keep {
		return nil
	}
	// timestamped names sort chronologically
	sort.Strings(entries)
	for _, old := range entries[:len(entries)-m.conf.Keep] {
		if err := os.Remove(old); err != nil {
			return errors.Wrapf(err, "backup.Remove(%s)", old)
		}
		m.logger.Info(fmt.Sprintf("backup: pruned %s", old))
	}
	return nil
}

// Start schedules automatic snapshots per the configured cron expression and
// returns the running scheduler. Call Stop on it to shut down.
func (m *Manager) Start() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(m.conf.Schedule, func() {
		if _, err := m.Snapshot(KindAuto); err != nil {
			m.logger.Error("backup: auto snapshot failed", err)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "backup.AddFunc(%q)", m.conf.Schedule)
	}
	c.Start()
	m.logger.Info(fmt.Sprintf("backup: auto snapshots scheduled (%s)", m.conf.Schedule))
	return c, nil
}
