package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/cache"
	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils"
	"smartclinic/cmd/internal/utils/apierror"
)

type AppointmentRepository interface {
	FindByID(id int) (*entity.Appointment, error)
	FindByDoctorAndRange(doctorID int, start, end int64) ([]*entity.Appointment, error)
	FindByDoctorPatientNameAndRange(doctorID int, patientName string, start, end int64) ([]*entity.Appointment, error)
	FindByPatientID(patientID int) ([]*entity.Appointment, error)
	FindByPatientIDAndStatus(patientID, status int) ([]*entity.Appointment, error)
	FindByDoctorNameAndPatientID(doctorName string, patientID int) ([]*entity.Appointment, error)
	FindByDoctorNameAndPatientIDAndStatus(doctorName string, patientID, status int) ([]*entity.Appointment, error)
	Save(appointment *entity.Appointment) error
	UpdateStatus(id, status int) error
	Delete(appointment *entity.Appointment) error
	DeleteAllByDoctorID(doctorID int) error
}

// UnitOfWork runs a callback with transaction-scoped repositories so that an
// ownership check and the mutation it guards form a single atomic unit.
type UnitOfWork interface {
	Do(fn func(appts AppointmentRepository, doctors DoctorRepository) error) error
}

// BookingCheck is the three-way outcome of the booking authorization.
// "Not offered" and "already booked" are deliberately one outcome, so there
// is no fourth state.
type BookingCheck int

const (
	BookingInvalidDoctor BookingCheck = iota
	BookingSlotTaken
	BookingOK
)

type BookingRequest struct {
	DoctorID        int     `json:"doctorId" validate:"required"`
	AppointmentTime string  `json:"appointmentTime" validate:"required,iso8601"`
	Condition       *string `json:"condition"`
}

type UpdateAppointmentRequest struct {
	DoctorID        int    `json:"doctorId" validate:"required"`
	AppointmentTime string `json:"appointmentTime" validate:"required,iso8601"`
}

type AppointmentResponse struct {
	ID              int     `json:"id"`
	DoctorID        int     `json:"doctorId"`
	DoctorName      string  `json:"doctorName"`
	PatientID       int     `json:"patientId"`
	PatientName     string  `json:"patientName"`
	PatientEmail    string  `json:"patientEmail"`
	PatientPhone    string  `json:"patientPhone"`
	PatientAddress  string  `json:"patientAddress"`
	AppointmentTime string  `json:"appointmentTime"`
	EndTime         string  `json:"endTime"`
	Status          int     `json:"status"`
	Condition       *string `json:"condition"`
}

type DefaultAppointmentService struct {
	Appointments AppointmentRepository
	Doctors      DoctorRepository
	Patients     PatientRepository
	UOW          UnitOfWork
	Validate     *validator.Validate
	Availability *cache.AvailabilityCache
}

func NewAppointmentService(appts AppointmentRepository, doctors DoctorRepository, patients PatientRepository, uow UnitOfWork, validate *validator.Validate, availability *cache.AvailabilityCache) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Appointments: appts,
		Doctors:      doctors,
		Patients:     patients,
		UOW:          uow,
		Validate:     validate,
		Availability: availability,
	}
}

// CheckBookable gates booking on catalog membership only: it does not consult
// availability, so an already-booked slot still comes back BookingOK here.
// Whether two concurrent bookings of the same slot both land is decided by
// the store, not by this check.
func (a *DefaultAppointmentService) CheckBookable(doctorID int, timeOfDay string) (BookingCheck, error) {
	doctor, err := a.Doctors.FindByID(doctorID)
	if err != nil {
		return BookingInvalidDoctor, err
	}
	if doctor == nil {
		return BookingInvalidDoctor, nil
	}

	for _, slot := range doctor.AvailableTimes {
		if slot == timeOfDay {
			return BookingOK, nil
		}
	}
	return BookingSlotTaken, nil
}

func (a *DefaultAppointmentService) Book(auth AuthorizedAs, req *BookingRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	millis, err := utils.FromEpoch(req.AppointmentTime)
	if err != nil {
		return apierror.MalformedBodyError
	}

	patient, err := a.Patients.FindByEmail(auth.Subject)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", auth.Subject, err)
		return apierror.InternalServerError
	}
	if patient == nil {
		return apierror.CallerNotPatientError
	}

	check, err := a.CheckBookable(req.DoctorID, utils.TimeOfDayLabel(millis))
	if err != nil {
		log.Errorf("failed to check bookability for doctor %d: %v", req.DoctorID, err)
		return apierror.InternalServerError
	}
	switch check {
	case BookingInvalidDoctor:
		return apierror.InvalidDoctorError
	case BookingSlotTaken:
		return apierror.SlotUnavailableError
	}

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patient.ID,
		AppointmentTime: millis,
		Status:          entity.StatusScheduled,
		Condition:       req.Condition,
	}
	if err := a.Appointments.Save(appointment); err != nil {
		log.Errorf("failed to save appointment: %v", err)
		return apierror.InternalServerError
	}

	a.Availability.Invalidate(req.DoctorID)
	return nil
}

// Update lets the owning patient move an appointment to another doctor or
// time. The load, ownership check, and save share one transaction. The new
// slot is deliberately not re-validated against the catalog or availability.
func (a *DefaultAppointmentService) Update(auth AuthorizedAs, appointmentID int, req *UpdateAppointmentRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := a.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	millis, err := utils.FromEpoch(req.AppointmentTime)
	if err != nil {
		return apierror.MalformedBodyError
	}

	patient, err := a.Patients.FindByEmail(auth.Subject)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", auth.Subject, err)
		return apierror.InternalServerError
	}
	if patient == nil {
		return apierror.CallerNotPatientError
	}

	var apierr apierror.ErrorResponse
	var previousDoctorID int
	err = a.UOW.Do(func(appts AppointmentRepository, doctors DoctorRepository) error {
		appointment, err := appts.FindByID(appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			apierr = apierror.AppointmentNotFoundError
			return errAbortTx
		}
		if appointment.PatientID != patient.ID {
			apierr = apierror.ForbiddenError
			return errAbortTx
		}

		doctor, err := doctors.FindByID(req.DoctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			apierr = apierror.DoctorNotFoundError
			return errAbortTx
		}

		previousDoctorID = appointment.DoctorID
		appointment.DoctorID = req.DoctorID
		appointment.AppointmentTime = millis
		return appts.Save(appointment)
	})
	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to update appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}

	a.Availability.Invalidate(previousDoctorID)
	a.Availability.Invalidate(req.DoctorID)
	return nil
}

// Cancel is a hard delete, allowed only to the owning patient.
func (a *DefaultAppointmentService) Cancel(auth AuthorizedAs, appointmentID int) apierror.ErrorResponse {
	patient, err := a.Patients.FindByEmail(auth.Subject)
	if err != nil {
		log.Errorf("failed to fetch patient %s: %v", auth.Subject, err)
		return apierror.InternalServerError
	}
	if patient == nil {
		return apierror.CallerNotPatientError
	}

	var apierr apierror.ErrorResponse
	var doctorID int
	err = a.UOW.Do(func(appts AppointmentRepository, doctors DoctorRepository) error {
		appointment, err := appts.FindByID(appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil {
			apierr = apierror.AppointmentNotFoundError
			return errAbortTx
		}
		if appointment.PatientID != patient.ID {
			apierr = apierror.ForbiddenError
			return errAbortTx
		}

		doctorID = appointment.DoctorID
		return appts.Delete(appointment)
	})
	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to cancel appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}

	a.Availability.Invalidate(doctorID)
	return nil
}

// ChangeStatus writes unconditionally. The AuthorizedAs parameter is the
// trust boundary: callers cannot reach this without a verified doctor
// credential, and no further ownership check happens here.
func (a *DefaultAppointmentService) ChangeStatus(auth AuthorizedAs, appointmentID, status int) apierror.ErrorResponse {
	if err := a.Appointments.UpdateStatus(appointmentID, status); err != nil {
		log.Errorf("failed to update status of appointment %d: %v", appointmentID, err)
		return apierror.InternalServerError
	}
	return nil
}

// ListForDoctor returns the doctor's appointments inside the date's closed
// interval, optionally narrowed by a case-insensitive patient-name substring.
func (a *DefaultAppointmentService) ListForDoctor(doctorID int, date, patientName string) ([]*AppointmentResponse, apierror.ErrorResponse) {
	dayStart, dayEnd, err := utils.DayRange(date)
	if err != nil {
		return nil, apierror.NewSimple(400, "Could not understand date format")
	}

	var appts []*entity.Appointment
	if patientName != "" {
		appts, err = a.Appointments.FindByDoctorPatientNameAndRange(doctorID, patientName, dayStart, dayEnd)
	} else {
		appts, err = a.Appointments.FindByDoctorAndRange(doctorID, dayStart, dayEnd)
	}
	if err != nil {
		log.Errorf("failed to fetch appointments for doctor %d on %s: %v", doctorID, date, err)
		return nil, apierror.InternalServerError
	}
	return toAppointmentResponses(appts), nil
}

func toAppointmentResponses(appts []*entity.Appointment) []*AppointmentResponse {
	resp := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		resp[i] = toAppointmentResponse(appt)
	}
	return resp
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              appt.ID,
		DoctorID:        appt.DoctorID,
		DoctorName:      appt.Doctor.Name,
		PatientID:       appt.PatientID,
		PatientName:     appt.Patient.Name,
		PatientEmail:    appt.Patient.Email,
		PatientPhone:    appt.Patient.Phone,
		PatientAddress:  appt.Patient.Address,
		AppointmentTime: utils.FormatEpoch(appt.AppointmentTime),
		EndTime:         utils.FormatEpoch(appt.AppointmentTime + 60*60*1000),
		Status:          appt.Status,
		Condition:       appt.Condition,
	}
}
