package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"hospital-booking/internal/converter"
	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/delivery/http/middleware"
	"hospital-booking/internal/domain/entity"
	"hospital-booking/internal/domain/repository"
	"hospital-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// triageSystemPrompt is the fixed contract with the model. The medical
// disclaimer requirement is policy, not presentation.
const triageSystemPrompt = `You are an AI medical assistant helping with symptom analysis for hospital appointment scheduling.
Your role is to:
1. Analyze patient symptoms
2. Suggest appropriate medical specialties
3. Assess urgency level (Low, Medium, High, Emergency)
4. Provide helpful guidance

IMPORTANT: Always include medical disclaimers and encourage patients to seek professional medical advice.

Respond in JSON format with:
{
    "analysis": "detailed analysis of symptoms",
    "recommended_specialties": ["list", "of", "specialties"],
    "urgency_level": "Low/Medium/High/Emergency",
    "additional_notes": "helpful advice and disclaimers"
}`

const (
	urgencyDefault = "Medium"

	disclaimerNote = "Please consult with a healthcare professional for proper diagnosis."

	fallbackAnalysis = "Basic symptom analysis - AI service temporarily unavailable"

	// Per recommended specialty, at most this many doctors are suggested
	maxDoctorsPerSpecialty = 3

	// The total-failure fallback suggests at most this many doctors
	maxFallbackDoctors = 5
)

var fallbackSpecialties = []string{"General Medicine", "Internal Medicine"}

// ChatCompleter is the external language-model collaborator. A single
// attempt is made per analysis; every failure mode is absorbed locally.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

type TriageUsecase interface {
	// Analyze never returns an error for model unavailability or
	// malformed model output; those degrade into a locally built result.
	Analyze(ctx context.Context, req *dto.AnalyzeSymptomsRequest) (*dto.SymptomAnalysisResponse, error)
}

type triageUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	chat         ChatCompleter
	auditService service.AuditService
}

func NewTriageUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	chat ChatCompleter,
	auditService service.AuditService,
) TriageUsecase {
	return &triageUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		chat:         chat,
		auditService: auditService,
	}
}

// modelTriage is the schema the model is asked to produce. The payload is
// untrusted; anything that fails to parse is replaced by a typed fallback.
type modelTriage struct {
	Analysis               string   `json:"analysis"`
	RecommendedSpecialties []string `json:"recommended_specialties"`
	UrgencyLevel           string   `json:"urgency_level"`
	AdditionalNotes        string   `json:"additional_notes"`
}

func (u *triageUsecase) Analyze(ctx context.Context, req *dto.AnalyzeSymptomsRequest) (*dto.SymptomAnalysisResponse, error) {
	db := u.db.WithContext(ctx)

	userMessage := fmt.Sprintf("Patient symptoms: %s\n\nPlease analyze these symptoms and provide recommendations.", req.Symptoms)

	raw, err := u.chat.Complete(ctx, triageSystemPrompt, userMessage)
	if err != nil {
		u.log.Warnf("AI analysis failed, using basic fallback: %+v", err)
		return u.basicFallback(ctx, db), nil
	}

	triage := parseModelTriage(raw)

	resp := &dto.SymptomAnalysisResponse{
		Analysis:               triage.Analysis,
		RecommendedSpecialties: triage.RecommendedSpecialties,
		RecommendedDoctors:     u.matchDoctors(db, triage.RecommendedSpecialties, triage.UrgencyLevel),
		UrgencyLevel:           triage.UrgencyLevel,
		AdditionalNotes:        triage.AdditionalNotes,
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Log(ctx, db, &userID, entity.AuditActionSymptomAnalyze, entity.JSON{
		"urgency_level": resp.UrgencyLevel,
		"specialties":   resp.RecommendedSpecialties,
	})

	return resp, nil
}

// parseModelTriage validates the raw model text against the expected
// schema. A parse failure is a local recovery: the raw text becomes the
// analysis and conservative defaults fill the rest.
func parseModelTriage(raw string) modelTriage {
	var triage modelTriage
	if err := json.Unmarshal([]byte(raw), &triage); err != nil {
		return modelTriage{
			Analysis:               raw,
			RecommendedSpecialties: []string{"General Medicine"},
			UrgencyLevel:           urgencyDefault,
			AdditionalNotes:        disclaimerNote,
		}
	}

	if triage.Analysis == "" {
		triage.Analysis = "Symptom analysis completed"
	}
	if len(triage.RecommendedSpecialties) == 0 {
		triage.RecommendedSpecialties = []string{"General Medicine"}
	}
	if !validUrgency(triage.UrgencyLevel) {
		triage.UrgencyLevel = urgencyDefault
	}
	if triage.AdditionalNotes == "" {
		triage.AdditionalNotes = disclaimerNote
	}

	return triage
}

func validUrgency(level string) bool {
	switch level {
	case "Low", "Medium", "High", "Emergency":
		return true
	}
	return false
}

// matchDoctors collects available doctors per recommended specialty, in
// the order the model gave them, capped per specialty. A doctor matching
// several specialties is suggested once, for the first match.
func (u *triageUsecase) matchDoctors(db *gorm.DB, specialties []string, urgency string) []dto.DoctorRecommendation {
	recommendations := make([]dto.DoctorRecommendation, 0)
	seen := make(map[uuid.UUID]bool)

	for _, specialty := range specialties {
		doctors, err := u.doctorRepo.FindAvailableBySpecialty(db, specialty, maxDoctorsPerSpecialty)
		if err != nil {
			u.log.Warnf("Failed to match doctors for specialty %q: %+v", specialty, err)
			continue
		}

		for i := range doctors {
			if seen[doctors[i].ID] {
				continue
			}
			// Doctor whose owning user is unresolved has no display name
			if doctors[i].User.ID == uuid.Nil {
				continue
			}
			seen[doctors[i].ID] = true
			recommendations = append(recommendations, dto.DoctorRecommendation{
				Doctor:       *converter.DoctorToResponse(&doctors[i]),
				MatchReason:  fmt.Sprintf("Specialized in %s", specialty),
				UrgencyLevel: urgency,
			})
		}
	}

	return recommendations
}

// basicFallback is the total-failure path: the model is unreachable, so a
// fixed result with general-practice doctors is returned. The caller must
// never see a failure here.
func (u *triageUsecase) basicFallback(ctx context.Context, db *gorm.DB) *dto.SymptomAnalysisResponse {
	recommendations := make([]dto.DoctorRecommendation, 0)

	doctors, err := u.doctorRepo.FindAvailableBySpecialties(db, fallbackSpecialties, maxFallbackDoctors)
	if err != nil {
		u.log.Warnf("Failed to find fallback doctors: %+v", err)
	} else {
		for i := range doctors {
			if doctors[i].User.ID == uuid.Nil {
				continue
			}
			recommendations = append(recommendations, dto.DoctorRecommendation{
				Doctor:       *converter.DoctorToResponse(&doctors[i]),
				MatchReason:  "General consultation",
				UrgencyLevel: urgencyDefault,
			})
		}
	}

	return &dto.SymptomAnalysisResponse{
		Analysis:               fallbackAnalysis,
		RecommendedSpecialties: fallbackSpecialties,
		RecommendedDoctors:     recommendations,
		UrgencyLevel:           urgencyDefault,
		AdditionalNotes:        disclaimerNote,
	}
}
