package handler

import (
	"encoding/json"
	"net/http"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/response"
	"hospital-booking/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book books an appointment for the authenticated patient. Patient only;
// the route enforces the role.
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorUnavailable:
			response.NotFound(w, "Doctor not found or unavailable")
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusBadRequest, "Time slot already booked", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// List returns the appointments visible to the authenticated user.
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

// Update applies a partial update to an appointment.
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.appointmentUsecase.Update(r.Context(), appointmentID, &req); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotOwned:
			response.Forbidden(w, "Access denied")
		case usecase.ErrSlotTaken:
			response.Error(w, http.StatusBadRequest, "Time slot already booked", nil)
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid appointment status", nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Appointment updated successfully"})
}
