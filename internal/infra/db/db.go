package db

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Miraines/MoonyAndStarry/library-service/internal/domain/library/model"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/config"
	"github.com/Miraines/MoonyAndStarry/library-service/internal/infra/migrate"
)

// Open connects to the configured store and brings its schema up to date.
// PostgreSQL is migrated with the embedded SQL files; SQLite uses AutoMigrate
// and receives the seed catalog when empty.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db handle: %w", err)
		}
		if err := migrate.Up(sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("postgres ready")
		return db, nil

	case config.DriverSQLite:
		db, err := OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			return nil, err
		}
		seeded, err := Seed(ctx, db)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite ready", zap.String("path", cfg.DatabaseURL), zap.Bool("seeded", seeded))
		return db, nil
	}
	return nil, fmt.Errorf("unsupported driver %q", cfg.DatabaseDriver)
}

// OpenSQLite opens a SQLite database with foreign keys enforced. A single
// connection is used so that ":memory:" databases are shared by every query.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	if !strings.Contains(dsn, "_foreign_keys") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_foreign_keys=on"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate creates the catalog tables with their foreign keys.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Author{}, &model.Category{}, &model.Book{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Seed inserts the starter catalog when no author exists yet.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&model.Author{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count authors: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	authors := []model.Author{
		{ID: 1, Name: "J.K. Rowling", Version: 1},
		{ID: 2, Name: "George R.R. Martin", Version: 1},
		{ID: 3, Name: "J.R.R. Tolkien", Version: 1},
	}
	categories := []model.Category{
		{ID: 1, Name: "Fantasy", Version: 1},
		{ID: 2, Name: "Science Fiction", Version: 1},
		{ID: 3, Name: "Mystery", Version: 1},
	}
	books := []model.Book{
		{ID: 1, Title: "Harry Potter", AuthorID: 1, CategoryID: 1, Version: 1},
		{ID: 2, Title: "Game of Thrones", AuthorID: 2, CategoryID: 1, Version: 1},
		{ID: 3, Title: "The Hobbit", AuthorID: 3, CategoryID: 1, Version: 1},
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&authors).Error; err != nil {
			return err
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}
		return tx.Omit("Author", "Category").Create(&books).Error
	})
	if err != nil {
		return false, fmt.Errorf("seed catalog: %w", err)
	}
	return true, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}
}
