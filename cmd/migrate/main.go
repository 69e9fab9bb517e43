package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
)

func main() {
	var (
		migrationsPath = flag.String("path", "migrations", "path to migration files")
		command        = flag.String("command", "up", "migration command: up, down, steps, goto, version, force, create")
		steps          = flag.Int("steps", 1, "number of steps for the steps command")
		targetVersion  = flag.Uint("version", 0, "target version for the goto command")
		name           = flag.String("name", "", "migration name for the create command")
	)
	flag.Parse()

	log := logger.NewForEnvironment(os.Getenv("STOREFRONT_APP_ENV"))
	defer func() { _ = log.Sync() }()

	if *command == "create" {
		if *name == "" {
			log.Fatal("The create command requires -name")
		}
		file, err := migration.CreateMigration(*migrationsPath, *name)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		fmt.Printf("Created %s\n", file.UpPath)
		fmt.Printf("Created %s\n", file.DownPath)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	m, err := migration.NewFromURL(cfg.Database.DSN(), *migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() { _ = m.Close() }()

	switch *command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		err = m.Steps(*steps)
	case "goto":
		err = m.GoTo(*targetVersion)
	case "force":
		err = m.Force(int(*targetVersion))
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal("Failed to read version", zap.Error(verr))
		}
		fmt.Println("version:", version, "dirty:", strconv.FormatBool(dirty))
		return
	default:
		log.Fatal("Unknown command", zap.String("command", *command))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", *command), zap.Error(err))
	}
	log.Info("Migration complete", zap.String("command", *command))
}
