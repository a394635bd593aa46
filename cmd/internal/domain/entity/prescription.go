package entity

type Prescription struct {
	ID            string `gorm:"primaryKey"`
	AppointmentID int    `gorm:"not null;index"` // References: appointments(id)
	PatientName   string `gorm:"not null"`
	Medication    string `gorm:"not null"`
	Dosage        string `gorm:"not null"`
	DoctorNotes   string
}
