package repository

import (
	"errors"

	"gorm.io/gorm"

	"smartclinic/cmd/internal/domain/entity"
)

type DefaultDoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DefaultDoctorRepository {
	return &DefaultDoctorRepository{db: db}
}

func (d *DefaultDoctorRepository) FindByID(id int) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := d.db.First(&doctor, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doctor, err
}

func (d *DefaultDoctorRepository) FindByEmail(email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := d.db.Where("email = ?", email).First(&doctor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &doctor, err
}

func (d *DefaultDoctorRepository) FindAll() ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.Find(&doctors).Error
	return doctors, err
}

// SQLite LIKE is case-insensitive for ASCII, which is the compare the
// name/specialty filters specify.
func (d *DefaultDoctorRepository) FindByNameLike(name string) ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.Where("name LIKE ?", "%"+name+"%").Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) FindBySpecialtyLike(specialty string) ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.Where("specialty LIKE ?", "%"+specialty+"%").Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) FindByNameAndSpecialtyLike(name, specialty string) ([]*entity.Doctor, error) {
	var doctors []*entity.Doctor
	err := d.db.
		Where("name LIKE ?", "%"+name+"%").
		Where("specialty LIKE ?", "%"+specialty+"%").
		Find(&doctors).Error
	return doctors, err
}

func (d *DefaultDoctorRepository) Save(doctor *entity.Doctor) error {
	return d.db.Save(doctor).Error
}

func (d *DefaultDoctorRepository) DeleteByID(id int) error {
	return d.db.Delete(&entity.Doctor{}, id).Error
}
