package sqlite

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.Admin{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Appointment{},
		&entity.Prescription{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
