package handler

import (
	"encoding/json"
	"net/http"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/response"
	"hospital-booking/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// CreateDoctor creates a doctor profile for an existing doctor-role user.
// Admin only; the route enforces the role.
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.doctorUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrUserNotDoctorRole:
			response.Error(w, http.StatusBadRequest, "User does not have the doctor role", nil)
		case usecase.ErrDoctorProfileExists:
			response.Error(w, http.StatusBadRequest, "Doctor profile already exists for this user", nil)
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// GetDoctors lists available doctors. Public endpoint.
func (h *DoctorHandler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAvailableDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.JSON(w, http.StatusOK, doctors)
}
