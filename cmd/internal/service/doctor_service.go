package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"smartclinic/cmd/internal/cache"
	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils"
	"smartclinic/cmd/internal/utils/apierror"
)

type DoctorRepository interface {
	FindByID(id int) (*entity.Doctor, error)
	FindByEmail(email string) (*entity.Doctor, error)
	FindAll() ([]*entity.Doctor, error)
	FindByNameLike(name string) ([]*entity.Doctor, error)
	FindBySpecialtyLike(specialty string) ([]*entity.Doctor, error)
	FindByNameAndSpecialtyLike(name, specialty string) ([]*entity.Doctor, error)
	Save(doctor *entity.Doctor) error
	DeleteByID(id int) error
}

type DoctorRequest struct {
	Name           string   `json:"name" validate:"required,min=3,max=100"`
	Specialty      string   `json:"specialty" validate:"required,max=50"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=6"`
	AvailableTimes []string `json:"availableTimes" validate:"dive,slotlabel"`
}

type DoctorUpdateRequest struct {
	ID int `json:"id" validate:"required"`
	DoctorRequest
}

type DoctorResponse struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	AvailableTimes []string `json:"availableTimes"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type DefaultDoctorService struct {
	Doctors      DoctorRepository
	Appointments AppointmentRepository
	UOW          UnitOfWork
	Tokens       TokenIssuer
	Validate     *validator.Validate
	Availability *cache.AvailabilityCache
}

type TokenIssuer interface {
	Generate(subject string) (string, error)
}

func NewDoctorService(doctors DoctorRepository, appts AppointmentRepository, uow UnitOfWork, tokens TokenIssuer, validate *validator.Validate, availability *cache.AvailabilityCache) *DefaultDoctorService {
	return &DefaultDoctorService{
		Doctors:      doctors,
		Appointments: appts,
		UOW:          uow,
		Tokens:       tokens,
		Validate:     validate,
		Availability: availability,
	}
}

// GetAvailability computes the free slots for a doctor on a date: the slot
// catalog minus the time-of-day labels already booked that day, catalog order
// preserved. A missing doctor and an empty catalog both yield an empty list;
// the distinction is made by existence checks one level up.
func (d *DefaultDoctorService) GetAvailability(doctorID int, date string) ([]string, apierror.ErrorResponse) {
	if free, ok := d.Availability.Get(doctorID, date); ok {
		return free, nil
	}

	dayStart, dayEnd, err := utils.DayRange(date)
	if err != nil {
		return nil, apierror.NewSimple(400, "Could not understand date format")
	}

	doctor, err := d.Doctors.FindByID(doctorID)
	if err != nil {
		log.Errorf("failed to fetch doctor %d: %v", doctorID, err)
		return nil, apierror.InternalServerError
	}
	if doctor == nil || len(doctor.AvailableTimes) == 0 {
		return []string{}, nil
	}

	appts, err := d.Appointments.FindByDoctorAndRange(doctorID, dayStart, dayEnd)
	if err != nil {
		log.Errorf("failed to fetch appointments for doctor %d on %s: %v", doctorID, date, err)
		return nil, apierror.InternalServerError
	}

	// Booked slots match the catalog by exact label only. A 09:00 booking
	// occupies an hour but removes just the "09:00" entry.
	booked := make(map[string]struct{}, len(appts))
	for _, appt := range appts {
		booked[utils.TimeOfDayLabel(appt.AppointmentTime)] = struct{}{}
	}

	free := make([]string, 0, len(doctor.AvailableTimes))
	for _, slot := range doctor.AvailableTimes {
		if _, taken := booked[slot]; !taken {
			free = append(free, slot)
		}
	}

	d.Availability.Store(doctorID, date, free)
	return free, nil
}

func (d *DefaultDoctorService) GetDoctors() ([]*DoctorResponse, apierror.ErrorResponse) {
	doctors, err := d.Doctors.FindAll()
	if err != nil {
		log.Errorf("failed to fetch all doctors: %v", err)
		return nil, apierror.InternalServerError
	}
	return toDoctorResponses(doctors), nil
}

func (d *DefaultDoctorService) SaveDoctor(req *DoctorRequest) apierror.ErrorResponse {
	utils.Sanitize(req)
	if err := d.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	existing, err := d.Doctors.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check doctor email %s: %v", req.Email, err)
		return apierror.InternalServerError
	}
	if existing != nil {
		return apierror.DoctorExistsError
	}

	doctor := &entity.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Password:       req.Password,
		AvailableTimes: req.AvailableTimes,
	}
	if err := d.Doctors.Save(doctor); err != nil {
		log.Errorf("failed to save doctor: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (d *DefaultDoctorService) UpdateDoctor(req *DoctorUpdateRequest) apierror.ErrorResponse {
	utils.Sanitize(&req.DoctorRequest)
	if err := d.Validate.Struct(req); err != nil {
		return apierror.FromValidationError(err)
	}

	doctor, err := d.Doctors.FindByID(req.ID)
	if err != nil {
		log.Errorf("failed to fetch doctor %d: %v", req.ID, err)
		return apierror.InternalServerError
	}
	if doctor == nil {
		return apierror.DoctorNotFoundError
	}

	doctor.Name = req.Name
	doctor.Specialty = req.Specialty
	doctor.Email = req.Email
	doctor.Password = req.Password
	doctor.AvailableTimes = req.AvailableTimes
	if err := d.Doctors.Save(doctor); err != nil {
		log.Errorf("failed to update doctor %d: %v", req.ID, err)
		return apierror.InternalServerError
	}

	d.Availability.Invalidate(req.ID)
	return nil
}

// DeleteDoctor removes the doctor and cascades onto their appointments inside
// one transaction.
func (d *DefaultDoctorService) DeleteDoctor(id int) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse
	err := d.UOW.Do(func(appts AppointmentRepository, doctors DoctorRepository) error {
		doctor, err := doctors.FindByID(id)
		if err != nil {
			return err
		}
		if doctor == nil {
			apierr = apierror.DoctorNotFoundError
			return errAbortTx
		}
		if err := appts.DeleteAllByDoctorID(id); err != nil {
			return err
		}
		return doctors.DeleteByID(id)
	})
	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("failed to delete doctor %d: %v", id, err)
		return apierror.InternalServerError
	}

	d.Availability.Invalidate(id)
	return nil
}

func (d *DefaultDoctorService) Login(req *LoginRequest) (*LoginResponse, apierror.ErrorResponse) {
	if err := d.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	doctor, err := d.Doctors.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch doctor by email: %v", err)
		return nil, apierror.InternalServerError
	}
	if doctor == nil || doctor.Password != req.Password {
		return nil, apierror.CredentialsMismatchError
	}

	token, err := d.Tokens.Generate(doctor.Email)
	if err != nil {
		log.Errorf("failed to generate token for doctor %d: %v", doctor.ID, err)
		return nil, apierror.InternalServerError
	}
	return &LoginResponse{Token: token, Message: "Login successful"}, nil
}

// FilterDoctors dispatches over the three optional predicates to the
// narrowest store query, then post-filters by time period when one is given.
func (d *DefaultDoctorService) FilterDoctors(name, specialty, period string) ([]*DoctorResponse, apierror.ErrorResponse) {
	hasName := name != ""
	hasSpecialty := specialty != ""
	hasPeriod := period != ""

	var doctors []*entity.Doctor
	var err error
	switch {
	case hasName && hasSpecialty:
		doctors, err = d.Doctors.FindByNameAndSpecialtyLike(name, specialty)
	case hasName:
		doctors, err = d.Doctors.FindByNameLike(name)
	case hasSpecialty:
		doctors, err = d.Doctors.FindBySpecialtyLike(specialty)
	default:
		doctors, err = d.Doctors.FindAll()
	}
	if err != nil {
		log.Errorf("failed to filter doctors: %v", err)
		return nil, apierror.InternalServerError
	}

	if hasPeriod {
		doctors = filterByPeriod(doctors, period)
	}
	return toDoctorResponses(doctors), nil
}

func filterByPeriod(doctors []*entity.Doctor, period string) []*entity.Doctor {
	matched := make([]*entity.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if hasSlotInPeriod(doctor.AvailableTimes, period) {
			matched = append(matched, doctor)
		}
	}
	return matched
}

// hasSlotInPeriod reports whether any catalog slot falls in the AM (hour <
// 12) or PM (hour >= 12) half of the day. Unparseable labels are skipped.
func hasSlotInPeriod(slots []string, period string) bool {
	for _, slot := range slots {
		hour, ok := utils.ParseSlotLabel(slot)
		if !ok {
			continue
		}
		if strings.EqualFold(period, "AM") && hour < 12 {
			return true
		}
		if strings.EqualFold(period, "PM") && hour >= 12 {
			return true
		}
	}
	return false
}

var errAbortTx = errors.New("abort transaction")

func toDoctorResponses(doctors []*entity.Doctor) []*DoctorResponse {
	resp := make([]*DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp[i] = toDoctorResponse(doctor)
	}
	return resp
}

func toDoctorResponse(doctor *entity.Doctor) *DoctorResponse {
	return &DoctorResponse{
		ID:             doctor.ID,
		Name:           doctor.Name,
		Specialty:      doctor.Specialty,
		Email:          doctor.Email,
		AvailableTimes: doctor.AvailableTimes,
	}
}
