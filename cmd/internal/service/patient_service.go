package service

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils"
	"smartclinic/cmd/internal/utils/apierror"
)

type PatientRepository interface {
	FindByID(id int) (*entity.Patient, error)
	FindByEmail(email string) (*entity.Patient, error)
	FindByEmailOrPhone(email, phone string) (*entity.Patient, error)
	Save(patient *entity.Patient) error
}

type PatientRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,len=10,digits"`
	Address  string `json:"address" validate:"max=255"`
}

type PatientResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PatientLoginResponse struct {
	Token     string `json:"token"`
	Message   string `json:"message"`
	PatientID int    `json:"patientId"`
}

type DefaultPatientService struct {
	Patients     PatientRepository
	Appointments AppointmentRepository
	Tokens       TokenIssuer
	Validate     *validator.Validate
}

func NewPatientService(patients PatientRepository, appts AppointmentRepository, tokens TokenIssuer, validate *validator.Validate) *DefaultPatientService {
	return &DefaultPatientService{
		Patients:     patients,
		Appointments: appts,
		Tokens:       tokens,
		Validate:     validate,
	}
}

func (p *DefaultPatientService) Register(req *PatientRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	existing, err := p.Patients.FindByEmailOrPhone(req.Email, req.Phone)
	if err != nil {
		log.Errorf("failed to check for existing patient: %v", err)
		return apierror.InternalServerError
	}
	if existing != nil {
		return apierror.PatientExistsError
	}

	patient := &entity.Patient{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	}
	if err := p.Patients.Save(patient); err != nil {
		log.Errorf("failed to register patient: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (p *DefaultPatientService) Login(req *LoginRequest) (*PatientLoginResponse, apierror.ErrorResponse) {
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	patient, err := p.Patients.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch patient by email: %v", err)
		return nil, apierror.InternalServerError
	}
	if patient == nil || patient.Password != req.Password {
		return nil, apierror.CredentialsMismatchError
	}

	token, err := p.Tokens.Generate(patient.Email)
	if err != nil {
		log.Errorf("failed to generate token for patient %d: %v", patient.ID, err)
		return nil, apierror.InternalServerError
	}
	return &PatientLoginResponse{Token: token, Message: "Login successful", PatientID: patient.ID}, nil
}

func (p *DefaultPatientService) GetDetails(subject string) (*PatientResponse, apierror.ErrorResponse) {
	patient, err := p.Patients.FindByEmail(subject)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", subject, err)
		return nil, apierror.InternalServerError
	}
	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}
	return toPatientResponse(patient), nil
}

func (p *DefaultPatientService) ListAppointments(patientID int) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := p.Appointments.FindByPatientID(patientID)
	if err != nil {
		log.Errorf("failed to fetch appointments for patient %d: %v", patientID, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponses(appts), nil
}

// FilterAppointments dispatches over the two optional predicates: condition
// ("past" selects completed, anything else scheduled) and a doctor-name
// substring.
func (p *DefaultPatientService) FilterAppointments(subject, condition, doctorName string) ([]*AppointmentResponse, apierror.ErrorResponse) {
	patient, err := p.Patients.FindByEmail(subject)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", subject, err)
		return nil, apierror.InternalServerError
	}
	if patient == nil {
		return nil, apierror.PatientNotFoundError
	}

	hasCondition := condition != ""
	hasDoctor := doctorName != ""

	var appts []*entity.Appointment
	switch {
	case hasCondition && hasDoctor:
		appts, err = p.Appointments.FindByDoctorNameAndPatientIDAndStatus(doctorName, patient.ID, conditionStatus(condition))
	case hasCondition:
		appts, err = p.Appointments.FindByPatientIDAndStatus(patient.ID, conditionStatus(condition))
	case hasDoctor:
		appts, err = p.Appointments.FindByDoctorNameAndPatientID(doctorName, patient.ID)
	default:
		appts, err = p.Appointments.FindByPatientID(patient.ID)
	}
	if err != nil {
		log.Errorf("failed to filter appointments for patient %d: %v", patient.ID, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponses(appts), nil
}

func conditionStatus(condition string) int {
	if strings.EqualFold(condition, "past") {
		return entity.StatusCompleted
	}
	return entity.StatusScheduled
}

func toPatientResponse(patient *entity.Patient) *PatientResponse {
	return &PatientResponse{
		ID:      patient.ID,
		Name:    patient.Name,
		Email:   patient.Email,
		Phone:   patient.Phone,
		Address: patient.Address,
	}
}
