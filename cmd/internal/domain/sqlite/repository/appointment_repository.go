package repository

import (
	"errors"

	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

func (a *DefaultAppointmentRepository) FindByDoctorAndRange(doctorID int, start, end int64) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Where("appointment_time BETWEEN ? AND ?", start, end).
		Order("appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByDoctorPatientNameAndRange(doctorID int, patientName string, start, end int64) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ?", doctorID).
		Where("patients.name LIKE ?", "%"+patientName+"%").
		Where("appointments.appointment_time BETWEEN ? AND ?", start, end).
		Order("appointments.appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByPatientID(patientID int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByPatientIDAndStatus(patientID, status int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Where("patient_id = ?", patientID).
		Where("status = ?", status).
		Order("appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByDoctorNameAndPatientID(doctorName string, patientID int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("doctors.name LIKE ?", "%"+doctorName+"%").
		Where("appointments.patient_id = ?", patientID).
		Order("appointments.appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) FindByDoctorNameAndPatientIDAndStatus(doctorName string, patientID, status int) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.
		Preload("Doctor").
		Preload("Patient").
		Joins("JOIN doctors ON doctors.id = appointments.doctor_id").
		Where("doctors.name LIKE ?", "%"+doctorName+"%").
		Where("appointments.patient_id = ?", patientID).
		Where("appointments.status = ?", status).
		Order("appointments.appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) Save(appointment *entity.Appointment) error {
	return a.db.Save(appointment).Error
}

func (a *DefaultAppointmentRepository) UpdateStatus(id, status int) error {
	return a.db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (a *DefaultAppointmentRepository) Delete(appointment *entity.Appointment) error {
	return a.db.Delete(appointment).Error
}

func (a *DefaultAppointmentRepository) DeleteAllByDoctorID(doctorID int) error {
	return a.db.Where("doctor_id = ?", doctorID).Delete(&entity.Appointment{}).Error
}
