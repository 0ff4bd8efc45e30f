package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cardvault/internal/models"
)

var DB *gorm.DB

// Initialize opens the database and migrates the schema. A Postgres
// connection string takes priority; otherwise a local SQLite file is
// used, which keeps single-user deployments dependency-free.
func Initialize(databaseURL, sqlitePath string) error {
	var (
		db  *gorm.DB
		err error
	)

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormCfg)
	}
	if err != nil {
		return err
	}

	DB = db
	log.Println("Database connected successfully")

	return Migrate(db)
}

// Migrate runs schema migrations. Also exposed through the admin init-db
// endpoint so a fresh deployment can be bootstrapped by hand.
func Migrate(db *gorm.DB) error {
	if err := cleanupDuplicateDailyPrices(db); err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.Card{},
		&models.Holding{},
		&models.DailyPrice{},
		&models.ValueSnapshot{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
