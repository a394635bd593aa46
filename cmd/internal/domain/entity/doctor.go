package entity

// Doctor holds the static slot catalog in AvailableTimes: an ordered list of
// time-of-day labels ("09:00") offered on every date.
type Doctor struct {
	ID             int      `gorm:"primaryKey"`
	Name           string   `gorm:"not null"`
	Specialty      string   `gorm:"not null"`
	Email          string   `gorm:"not null;unique"`
	Password       string   `gorm:"not null"`
	AvailableTimes []string `gorm:"serializer:json"`
}
