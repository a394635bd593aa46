package repository

import (
	"errors"

	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

type DefaultAdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *DefaultAdminRepository {
	return &DefaultAdminRepository{db: db}
}

func (a *DefaultAdminRepository) FindByUsername(username string) (*entity.Admin, error) {
	var admin entity.Admin
	err := a.db.Where("username = ?", username).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &admin, err
}
