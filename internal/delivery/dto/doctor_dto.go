package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	UserID          uuid.UUID           `json:"user_id" validate:"required"`
	Specializations []string            `json:"specializations" validate:"required,min=1,dive,required"`
	ExperienceYears int                 `json:"experience_years" validate:"gte=0"`
	Qualifications  string              `json:"qualifications" validate:"required"`
	ConsultationFee decimal.Decimal     `json:"consultation_fee" validate:"required"`
	AvailableDays   []string            `json:"available_days" validate:"required,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	AvailableHours  map[string][]string `json:"available_hours" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Specializations []string            `json:"specializations"`
	ExperienceYears int                 `json:"experience_years"`
	Qualifications  string              `json:"qualifications"`
	ConsultationFee decimal.Decimal     `json:"consultation_fee"`
	AvailableDays   []string            `json:"available_days"`
	AvailableHours  map[string][]string `json:"available_hours"`
	IsAvailable     bool                `json:"is_available"`
}

type CreateDoctorResponse struct {
	Message  string    `json:"message"`
	DoctorID uuid.UUID `json:"doctor_id"`
}
