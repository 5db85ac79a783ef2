package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Symptoms        string    `json:"symptoms" validate:"required"`
}

// UpdateAppointmentRequest carries a partial update; nil fields are left
// unchanged.
type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time `json:"appointment_date" validate:"omitempty"`
	Status          *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	Notes           *string    `json:"notes" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientName     string    `json:"patient_name"`
	DoctorName      string    `json:"doctor_name"`
	AppointmentDate time.Time `json:"appointment_date"`
	Symptoms        string    `json:"symptoms"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes"`
}

type CreateAppointmentResponse struct {
	Message       string    `json:"message"`
	AppointmentID uuid.UUID `json:"appointment_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
