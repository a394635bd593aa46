package repository

import (
	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

type DefaultPrescriptionRepository struct {
	db *gorm.DB
}

func NewPrescriptionRepository(db *gorm.DB) *DefaultPrescriptionRepository {
	return &DefaultPrescriptionRepository{db: db}
}

func (p *DefaultPrescriptionRepository) Save(prescription *entity.Prescription) error {
	return p.db.Save(prescription).Error
}

func (p *DefaultPrescriptionRepository) FindByAppointmentID(appointmentID int) ([]*entity.Prescription, error) {
	var prescriptions []*entity.Prescription
	err := p.db.Where("appointment_id = ?", appointmentID).Find(&prescriptions).Error
	return prescriptions, err
}
