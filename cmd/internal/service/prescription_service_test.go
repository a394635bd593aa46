package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavePrescription(t *testing.T) {
	repo := &fakePrescriptionRepo{}
	svc := NewPrescriptionService(repo, newTestValidator())

	apierr := svc.Save(asDoctor("house@clinic.test"), &PrescriptionRequest{
		AppointmentID: 1,
		PatientName:   "John Dorian",
		Medication:    "Ibuprofen",
		Dosage:        "400mg twice daily",
		DoctorNotes:   "Take with food",
	})
	require.Nil(t, apierr)

	require.Len(t, repo.prescriptions, 1)
	assert.NotEmpty(t, repo.prescriptions[0].ID)
	assert.Equal(t, 1, repo.prescriptions[0].AppointmentID)
}

func TestSavePrescription_MissingMedication(t *testing.T) {
	repo := &fakePrescriptionRepo{}
	svc := NewPrescriptionService(repo, newTestValidator())

	apierr := svc.Save(asDoctor("house@clinic.test"), &PrescriptionRequest{
		AppointmentID: 1,
		PatientName:   "John Dorian",
		Dosage:        "400mg",
	})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
	assert.Empty(t, repo.prescriptions)
}

func TestGetPrescriptionsByAppointment(t *testing.T) {
	repo := &fakePrescriptionRepo{}
	svc := NewPrescriptionService(repo, newTestValidator())

	require.Nil(t, svc.Save(asDoctor("house@clinic.test"), &PrescriptionRequest{
		AppointmentID: 1, PatientName: "John Dorian", Medication: "Ibuprofen", Dosage: "400mg",
	}))
	require.Nil(t, svc.Save(asDoctor("house@clinic.test"), &PrescriptionRequest{
		AppointmentID: 2, PatientName: "Carla Espinosa", Medication: "Amoxicillin", Dosage: "500mg",
	}))

	resp, apierr := svc.GetByAppointment(1)
	require.Nil(t, apierr)
	require.Len(t, resp, 1)
	assert.Equal(t, "Ibuprofen", resp[0].Medication)

	resp, apierr = svc.GetByAppointment(99)
	require.Nil(t, apierr)
	assert.Empty(t, resp)
}
