package repository

import (
	"encoding/json"
	"errors"

	"hospital-booking/internal/domain/entity"
	domainRepo "hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAllAvailable(db *gorm.DB, limit int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").
		Where("is_available = ?", true).
		Order("created_at ASC").
		Limit(limit).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindAvailableBySpecialty matches doctors whose specialization set contains
// the given specialty, using JSONB containment.
func (r *doctorRepository) FindAvailableBySpecialty(db *gorm.DB, specialty string, limit int) ([]entity.Doctor, error) {
	containment, err := json.Marshal([]string{specialty})
	if err != nil {
		return nil, err
	}

	var doctors []entity.Doctor
	err = db.Preload("User").
		Where("is_available = ? AND specializations @> ?", true, string(containment)).
		Order("created_at ASC").
		Limit(limit).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// FindAvailableBySpecialties matches doctors holding any of the given
// specialties. Used by the triage fallback path.
func (r *doctorRepository) FindAvailableBySpecialties(db *gorm.DB, specialties []string, limit int) ([]entity.Doctor, error) {
	query := db.Preload("User").Where("is_available = ?", true)

	sub := db.Session(&gorm.Session{NewDB: true})
	for _, specialty := range specialties {
		containment, err := json.Marshal([]string{specialty})
		if err != nil {
			return nil, err
		}
		sub = sub.Or("specializations @> ?", string(containment))
	}
	query = query.Where(sub)

	var doctors []entity.Doctor
	err := query.Order("created_at ASC").Limit(limit).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}
