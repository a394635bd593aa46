package entity

type Patient struct {
	ID       int    `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"not null;unique"`
	Password string `gorm:"not null"`
	Phone    string `gorm:"not null;unique"`
	Address  string
}
