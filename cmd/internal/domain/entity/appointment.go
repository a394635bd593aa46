package entity

// Appointment status values. The wire format stays an integer.
const (
	StatusScheduled = 0
	StatusCompleted = 1
)

type Appointment struct {
	ID              int   `gorm:"primaryKey"`
	DoctorID        int   `gorm:"not null;index"` // References: doctors(id)
	PatientID       int   `gorm:"not null;index"` // References: patients(id)
	AppointmentTime int64 `gorm:"not null"`
	Status          int   `gorm:"not null"`
	Condition       *string

	// Relations
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID"`
	Patient Patient `gorm:"foreignKey:PatientID;references:ID"`
}
