package repository

import (
	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindAllAvailable(db *gorm.DB, limit int) ([]entity.Doctor, error)
	FindAvailableBySpecialty(db *gorm.DB, specialty string, limit int) ([]entity.Doctor, error)
	FindAvailableBySpecialties(db *gorm.DB, specialties []string, limit int) ([]entity.Doctor, error)
}
