package dto

// Request DTOs

type AnalyzeSymptomsRequest struct {
	Symptoms  string `json:"symptoms" validate:"required,min=3"`
	PatientID string `json:"patient_id" validate:"omitempty"`
}

// Response DTOs

type DoctorRecommendation struct {
	Doctor       DoctorResponse `json:"doctor"`
	MatchReason  string         `json:"match_reason"`
	UrgencyLevel string         `json:"urgency_level"`
}

type SymptomAnalysisResponse struct {
	Analysis               string                 `json:"analysis"`
	RecommendedSpecialties []string               `json:"recommended_specialties"`
	RecommendedDoctors     []DoctorRecommendation `json:"recommended_doctors"`
	UrgencyLevel           string                 `json:"urgency_level"`
	AdditionalNotes        string                 `json:"additional_notes"`
}
