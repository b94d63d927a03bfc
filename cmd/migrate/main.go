// Command migrate applies or rolls back database schema migrations.
//
// Usage:
//
//	migrate -dir ./migrations up
//	migrate -dir ./migrations down
//	migrate -dir ./migrations version
//	migrate -dir ./migrations force 3
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/erp/masterdata/internal/infrastructure/config"
	"github.com/erp/masterdata/internal/infrastructure/logger"
	"github.com/erp/masterdata/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "migrations", "path to migration files")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: migrate [-dir path] up|down|version|force <v>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	m, err := migration.NewMigrator(*dir, cfg.Database.URL(), log)
	if err != nil {
		log.Fatal("failed to create migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = m.Version()
		if err == nil {
			log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version argument")
		}
		var v int
		v, err = strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal("invalid version", zap.String("arg", flag.Arg(1)))
		}
		err = m.Force(v)
	default:
		log.Fatal("unknown command", zap.String("command", cmd))
	}
	if err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}
