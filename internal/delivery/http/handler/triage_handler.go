package handler

import (
	"encoding/json"
	"net/http"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/response"
	"hospital-booking/pkg/validator"
)

type TriageHandler struct {
	triageUsecase usecase.TriageUsecase
	validator     *validator.CustomValidator
}

func NewTriageHandler(triageUsecase usecase.TriageUsecase, validator *validator.CustomValidator) *TriageHandler {
	return &TriageHandler{
		triageUsecase: triageUsecase,
		validator:     validator,
	}
}

// AnalyzeSymptoms runs symptom triage. Patients and admins only; the
// route enforces the role. Model failures degrade into a fallback result,
// so this endpoint only errors on bad input.
func (h *TriageHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeSymptomsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.triageUsecase.Analyze(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to analyze symptoms")
		return
	}

	response.JSON(w, http.StatusOK, result)
}
