package service

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"smartclinic/cmd/internal/domain/entity"
	"smartclinic/cmd/internal/utils/validators"
)

func newTestValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("slotlabel", validators.IsSlotLabel)
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("digits", validators.IsDigits)
	return validate
}

type fakeAdminRepo struct {
	admins []*entity.Admin
}

func (f *fakeAdminRepo) FindByUsername(username string) (*entity.Admin, error) {
	for _, admin := range f.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors []*entity.Doctor
	nextID  int
}

func (f *fakeDoctorRepo) FindByID(id int) (*entity.Doctor, error) {
	for _, doctor := range f.doctors {
		if doctor.ID == id {
			return doctor, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindByEmail(email string) (*entity.Doctor, error) {
	for _, doctor := range f.doctors {
		if doctor.Email == email {
			return doctor, nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) FindAll() ([]*entity.Doctor, error) {
	return append([]*entity.Doctor{}, f.doctors...), nil
}

func (f *fakeDoctorRepo) FindByNameLike(name string) ([]*entity.Doctor, error) {
	matched := []*entity.Doctor{}
	for _, doctor := range f.doctors {
		if containsFold(doctor.Name, name) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

func (f *fakeDoctorRepo) FindBySpecialtyLike(specialty string) ([]*entity.Doctor, error) {
	matched := []*entity.Doctor{}
	for _, doctor := range f.doctors {
		if containsFold(doctor.Specialty, specialty) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

func (f *fakeDoctorRepo) FindByNameAndSpecialtyLike(name, specialty string) ([]*entity.Doctor, error) {
	matched := []*entity.Doctor{}
	for _, doctor := range f.doctors {
		if containsFold(doctor.Name, name) && containsFold(doctor.Specialty, specialty) {
			matched = append(matched, doctor)
		}
	}
	return matched, nil
}

func (f *fakeDoctorRepo) Save(doctor *entity.Doctor) error {
	if doctor.ID == 0 {
		f.nextID++
		doctor.ID = f.nextID
		f.doctors = append(f.doctors, doctor)
		return nil
	}
	for i, existing := range f.doctors {
		if existing.ID == doctor.ID {
			f.doctors[i] = doctor
			return nil
		}
	}
	f.doctors = append(f.doctors, doctor)
	return nil
}

func (f *fakeDoctorRepo) DeleteByID(id int) error {
	for i, doctor := range f.doctors {
		if doctor.ID == id {
			f.doctors = append(f.doctors[:i], f.doctors[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePatientRepo struct {
	patients []*entity.Patient
	nextID   int
}

func (f *fakePatientRepo) FindByID(id int) (*entity.Patient, error) {
	for _, patient := range f.patients {
		if patient.ID == id {
			return patient, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByEmail(email string) (*entity.Patient, error) {
	for _, patient := range f.patients {
		if patient.Email == email {
			return patient, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) FindByEmailOrPhone(email, phone string) (*entity.Patient, error) {
	for _, patient := range f.patients {
		if patient.Email == email || patient.Phone == phone {
			return patient, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) Save(patient *entity.Patient) error {
	if patient.ID == 0 {
		f.nextID++
		patient.ID = f.nextID
	}
	f.patients = append(f.patients, patient)
	return nil
}

type fakeApptRepo struct {
	appts  []*entity.Appointment
	nextID int
}

func (f *fakeApptRepo) FindByID(id int) (*entity.Appointment, error) {
	for _, appt := range f.appts {
		if appt.ID == id {
			return appt, nil
		}
	}
	return nil, nil
}

func (f *fakeApptRepo) FindByDoctorAndRange(doctorID int, start, end int64) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.DoctorID == doctorID && appt.AppointmentTime >= start && appt.AppointmentTime <= end {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) FindByDoctorPatientNameAndRange(doctorID int, patientName string, start, end int64) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.DoctorID == doctorID &&
			appt.AppointmentTime >= start && appt.AppointmentTime <= end &&
			containsFold(appt.Patient.Name, patientName) {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) FindByPatientID(patientID int) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.PatientID == patientID {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) FindByPatientIDAndStatus(patientID, status int) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.PatientID == patientID && appt.Status == status {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) FindByDoctorNameAndPatientID(doctorName string, patientID int) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.PatientID == patientID && containsFold(appt.Doctor.Name, doctorName) {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) FindByDoctorNameAndPatientIDAndStatus(doctorName string, patientID, status int) ([]*entity.Appointment, error) {
	matched := []*entity.Appointment{}
	for _, appt := range f.appts {
		if appt.PatientID == patientID && appt.Status == status && containsFold(appt.Doctor.Name, doctorName) {
			matched = append(matched, appt)
		}
	}
	sortByTime(matched)
	return matched, nil
}

func (f *fakeApptRepo) Save(appointment *entity.Appointment) error {
	if appointment.ID == 0 {
		f.nextID++
		appointment.ID = f.nextID
		f.appts = append(f.appts, appointment)
		return nil
	}
	for i, existing := range f.appts {
		if existing.ID == appointment.ID {
			f.appts[i] = appointment
			return nil
		}
	}
	f.appts = append(f.appts, appointment)
	return nil
}

// UpdateStatus mirrors the store: updating a missing row is not an error.
func (f *fakeApptRepo) UpdateStatus(id, status int) error {
	for _, appt := range f.appts {
		if appt.ID == id {
			appt.Status = status
		}
	}
	return nil
}

func (f *fakeApptRepo) Delete(appointment *entity.Appointment) error {
	for i, appt := range f.appts {
		if appt.ID == appointment.ID {
			f.appts = append(f.appts[:i], f.appts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeApptRepo) DeleteAllByDoctorID(doctorID int) error {
	kept := f.appts[:0]
	for _, appt := range f.appts {
		if appt.DoctorID != doctorID {
			kept = append(kept, appt)
		}
	}
	f.appts = kept
	return nil
}

type fakePrescriptionRepo struct {
	prescriptions []*entity.Prescription
}

func (f *fakePrescriptionRepo) Save(prescription *entity.Prescription) error {
	f.prescriptions = append(f.prescriptions, prescription)
	return nil
}

func (f *fakePrescriptionRepo) FindByAppointmentID(appointmentID int) ([]*entity.Prescription, error) {
	matched := []*entity.Prescription{}
	for _, prescription := range f.prescriptions {
		if prescription.AppointmentID == appointmentID {
			matched = append(matched, prescription)
		}
	}
	return matched, nil
}

// fakeUOW runs the callback against the same fakes with no transaction.
type fakeUOW struct {
	appts   AppointmentRepository
	doctors DoctorRepository
}

func (f *fakeUOW) Do(fn func(appts AppointmentRepository, doctors DoctorRepository) error) error {
	return fn(f.appts, f.doctors)
}

type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Generate(subject string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-for-" + subject, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortByTime(appts []*entity.Appointment) {
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].AppointmentTime < appts[j].AppointmentTime
	})
}
