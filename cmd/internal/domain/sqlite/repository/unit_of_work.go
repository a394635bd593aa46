package repository

import (
	"gorm.io/gorm"

	"smartclinic/cmd/internal/service"
)

// DefaultUnitOfWork runs a callback against transaction-scoped repositories,
// so an ownership check and the mutation it guards commit or roll back as one.
type DefaultUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *DefaultUnitOfWork {
	return &DefaultUnitOfWork{db: db}
}

func (u *DefaultUnitOfWork) Do(fn func(appts service.AppointmentRepository, doctors service.DoctorRepository) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewAppointmentRepository(tx), NewDoctorRepository(tx))
	})
}
