package repository

import (
	"time"

	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindActiveSlot returns the non-cancelled appointment occupying the
	// exact (doctorID, at) slot, or nil when the slot is free.
	FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, at time.Time) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.Appointment, error)
	FindAll(db *gorm.DB, limit int) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
