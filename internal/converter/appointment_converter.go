package converter

import (
	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment with preloaded Patient and
// Doctor.User into a display DTO. Returns nil when either cross-reference
// is unresolved; callers omit such rows from listings.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}
	if appointment.Patient.ID == uuid.Nil || appointment.Doctor.User.ID == uuid.Nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientName:     appointment.Patient.Name,
		DoctorName:      appointment.Doctor.User.Name,
		AppointmentDate: appointment.AppointmentDate,
		Symptoms:        appointment.Symptoms,
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
	}
}

// AppointmentsToResponses converts appointments to display DTOs, silently
// dropping rows whose patient or doctor record cannot be resolved.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		if resp := AppointmentToResponse(&appointments[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}
	return responses
}
