package converter

import (
	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO. The
// display name comes from the owning User, which must be preloaded.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		Name:            doctor.User.Name,
		Specializations: doctor.Specializations,
		ExperienceYears: doctor.ExperienceYears,
		Qualifications:  doctor.Qualifications,
		ConsultationFee: doctor.ConsultationFee,
		AvailableDays:   doctor.AvailableDays,
		AvailableHours:  doctor.AvailableHours,
		IsAvailable:     doctor.IsAvailable,
	}
}

// DoctorsToResponses converts doctors to response DTOs. Doctors whose
// owning user record cannot be resolved are skipped, never surfaced as an
// error.
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		if doctors[i].User.ID == uuid.Nil {
			continue
		}
		responses = append(responses, *DoctorToResponse(&doctors[i]))
	}
	return responses
}
