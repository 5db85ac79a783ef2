package handler

import (
	"net/http"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/usecase"
	"hospital-booking/pkg/response"
)

type SampleDataHandler struct {
	sampleDataUsecase usecase.SampleDataUsecase
}

func NewSampleDataHandler(sampleDataUsecase usecase.SampleDataUsecase) *SampleDataHandler {
	return &SampleDataHandler{
		sampleDataUsecase: sampleDataUsecase,
	}
}

// CreateSampleData seeds demo users and doctors for manual testing.
func (h *SampleDataHandler) CreateSampleData(w http.ResponseWriter, r *http.Request) {
	if err := h.sampleDataUsecase.CreateSampleData(r.Context()); err != nil {
		switch err {
		case usecase.ErrSampleDataExists:
			response.Error(w, http.StatusBadRequest, "Sample data already created", nil)
		default:
			response.InternalServerError(w, "Failed to create sample data")
		}
		return
	}

	response.JSON(w, http.StatusOK, dto.MessageResponse{Message: "Sample data created successfully"})
}
