package db

import (
	"log"
	"time"

	"sacco-guarantor-service/internal/domain/guarantee"
	"sacco-guarantor-service/internal/domain/loan"
	"sacco-guarantor-service/internal/domain/member"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector is split out so tests can inject a mocked
// connection.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// surfaces unique-index violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates the guarantor-core tables. Member, share
// deposit and loan tables are owned by the wider system; migrating them
// here keeps the service runnable standalone.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&member.Member{},
		&member.ShareDeposit{},
		&loan.Loan{},
		&guarantee.Guarantee{},
	)
}
