package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ogurasousui/hr-records-api/internal/platform/config"
	"github.com/ogurasousui/hr-records-api/internal/platform/logging"
	"github.com/sirupsen/logrus"
)

// migrator は *migrate.Migrate のうちコマンドが使う操作です。
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Force(version int) error
	Drop() error
	Version() (uint, bool, error)
}

func main() {
	var (
		configPath    = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		migrationsDir = flag.String("dir", "assets/migrations", "directory containing migration files")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [flags] [up|down|steps N|force VERSION|drop|version]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	base, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("failed to initialize logger: %v", err)
	}
	logger := base.WithFields(logrus.Fields{"action": action, "dir": *migrationsDir})

	m, err := newMigrate(*migrationsDir, cfg.Database.DSN())
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare migrations")
	}
	runErr := runAction(logger, m, action, flag.Args())
	if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
		logger.WithError(errors.Join(srcErr, dbErr)).Warn("failed to close migrate instance")
	}
	if runErr != nil {
		logger.WithError(runErr).Fatal("migration failed")
	}

	logger.Info("migration completed")
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func newMigrate(dir, dsn string) (*migrate.Migrate, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path for %s: %w", dir, err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dsn)
	if err != nil {
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}

// runAction は action を実行します。args[0] は action 自身で、steps と force は args[1] を数値として扱います。
func runAction(logger logrus.FieldLogger, m migrator, action string, args []string) error {
	switch action {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		return ignoreNoChange(m.Down())
	case "steps":
		n, err := intArg(args, "steps")
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Steps(n))
	case "force":
		version, err := intArg(args, "force")
		if err != nil {
			return err
		}
		return m.Force(version)
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				logger.Info("no migration applied")
				return nil
			}
			return err
		}
		logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("current migration version")
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}

func intArg(args []string, action string) (int, error) {
	if len(args) < 2 {
		return 0, fmt.Errorf("%s requires a numeric argument", action)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%s: invalid argument %q: %w", action, args[1], err)
	}
	return n, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
