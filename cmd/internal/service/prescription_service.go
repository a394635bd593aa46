package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils"
	"smartclinic/cmd/internal/utils/apierror"
)

type PrescriptionRepository interface {
	Save(prescription *entity.Prescription) error
	FindByAppointmentID(appointmentID int) ([]*entity.Prescription, error)
}

type PrescriptionRequest struct {
	AppointmentID int    `json:"appointmentId" validate:"required"`
	PatientName   string `json:"patientName" validate:"required,min=3,max=100"`
	Medication    string `json:"medication" validate:"required,min=3,max=100"`
	Dosage        string `json:"dosage" validate:"required"`
	DoctorNotes   string `json:"doctorNotes" validate:"max=200"`
}

type PrescriptionResponse struct {
	ID            string `json:"id"`
	AppointmentID int    `json:"appointmentId"`
	PatientName   string `json:"patientName"`
	Medication    string `json:"medication"`
	Dosage        string `json:"dosage"`
	DoctorNotes   string `json:"doctorNotes"`
}

type DefaultPrescriptionService struct {
	Prescriptions PrescriptionRepository
	Validate      *validator.Validate
}

func NewPrescriptionService(prescriptions PrescriptionRepository, validate *validator.Validate) *DefaultPrescriptionService {
	return &DefaultPrescriptionService{Prescriptions: prescriptions, Validate: validate}
}

func (p *DefaultPrescriptionService) Save(auth AuthorizedAs, req *PrescriptionRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	prescription := &entity.Prescription{
		ID:            uuid.NewString(),
		AppointmentID: req.AppointmentID,
		PatientName:   req.PatientName,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
	}
	if err := p.Prescriptions.Save(prescription); err != nil {
		log.Errorf("failed to save prescription for appointment %d: %v", req.AppointmentID, err)
		return apierror.InternalServerError
	}
	return nil
}

func (p *DefaultPrescriptionService) GetByAppointment(appointmentID int) ([]*PrescriptionResponse, apierror.ErrorResponse) {
	prescriptions, err := p.Prescriptions.FindByAppointmentID(appointmentID)
	if err != nil {
		log.Errorf("failed to fetch prescriptions for appointment %d: %v", appointmentID, err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*PrescriptionResponse, len(prescriptions))
	for i, prescription := range prescriptions {
		resp[i] = &PrescriptionResponse{
			ID:            prescription.ID,
			AppointmentID: prescription.AppointmentID,
			PatientName:   prescription.PatientName,
			Medication:    prescription.Medication,
			Dosage:        prescription.Dosage,
			DoctorNotes:   prescription.DoctorNotes,
		}
	}
	return resp, nil
}
