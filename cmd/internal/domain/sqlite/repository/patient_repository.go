package repository

import (
	"errors"

	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

type DefaultPatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *DefaultPatientRepository {
	return &DefaultPatientRepository{db: db}
}

func (p *DefaultPatientRepository) FindByID(id int) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.First(&patient, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (p *DefaultPatientRepository) FindByEmail(email string) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.Where("email = ?", email).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (p *DefaultPatientRepository) FindByEmailOrPhone(email, phone string) (*entity.Patient, error) {
	var patient entity.Patient
	err := p.db.Where("email = ? OR phone = ?", email, phone).First(&patient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &patient, err
}

func (p *DefaultPatientRepository) Save(patient *entity.Patient) error {
	return p.db.Save(patient).Error
}
