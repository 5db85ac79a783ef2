package repository

import (
	"errors"
	"time"

	"hospital-booking/internal/domain/entity"
	domainRepo "hospital-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, at time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.
		Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
			doctorID, at, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.User").
		Order("appointment_date ASC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Patient", "Doctor").Save(appointment).Error
}
