package usecase

import (
	"context"
	"errors"
	"testing"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
)

func triageDoctor(name string, specialties ...string) entity.Doctor {
	user := entity.User{ID: uuid.New(), Name: name, Role: entity.RoleDoctor}
	return entity.Doctor{
		ID:              uuid.New(),
		UserID:          user.ID,
		Specializations: entity.StringList(specialties),
		IsAvailable:     true,
		User:            user,
	}
}

func TestAnalyzeWellFormedModelOutput(t *testing.T) {
	cardiologist := triageDoctor("Dr. Heart", "Cardiology")
	doctorRepo := newStubDoctorRepo()
	doctorRepo.bySpecialty["Cardiology"] = []entity.Doctor{cardiologist}

	chat := &stubChat{reply: `{
		"analysis": "Chest pain with shortness of breath suggests a cardiac cause.",
		"recommended_specialties": ["Cardiology"],
		"urgency_level": "High",
		"additional_notes": "Seek immediate care. This is not a diagnosis."
	}`}
	audit := &stubAuditService{}
	u := NewTriageUsecase(testDB(), testLogger(), doctorRepo, chat, audit)

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "chest pain, short of breath"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.UrgencyLevel != "High" {
		t.Errorf("UrgencyLevel = %q, want High", resp.UrgencyLevel)
	}
	if len(resp.RecommendedSpecialties) != 1 || resp.RecommendedSpecialties[0] != "Cardiology" {
		t.Errorf("RecommendedSpecialties = %v, want [Cardiology]", resp.RecommendedSpecialties)
	}
	if len(resp.RecommendedDoctors) != 1 {
		t.Fatalf("RecommendedDoctors = %d, want 1", len(resp.RecommendedDoctors))
	}
	rec := resp.RecommendedDoctors[0]
	if rec.Doctor.Name != "Dr. Heart" {
		t.Errorf("recommended doctor = %q, want Dr. Heart", rec.Doctor.Name)
	}
	if rec.MatchReason != "Specialized in Cardiology" {
		t.Errorf("MatchReason = %q", rec.MatchReason)
	}
	if rec.UrgencyLevel != "High" {
		t.Errorf("recommendation urgency = %q, want High", rec.UrgencyLevel)
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionSymptomAnalyze {
		t.Errorf("audit actions = %v", audit.actions)
	}
}

func TestAnalyzeMalformedModelOutput(t *testing.T) {
	raw := "I think you should see a doctor about that cough."
	u := NewTriageUsecase(testDB(), testLogger(), newStubDoctorRepo(), &stubChat{reply: raw}, &stubAuditService{})

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "persistent cough"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if resp.Analysis != raw {
		t.Errorf("Analysis = %q, want the raw model text", resp.Analysis)
	}
	if len(resp.RecommendedSpecialties) != 1 || resp.RecommendedSpecialties[0] != "General Medicine" {
		t.Errorf("RecommendedSpecialties = %v, want [General Medicine]", resp.RecommendedSpecialties)
	}
	if resp.UrgencyLevel != "Medium" {
		t.Errorf("UrgencyLevel = %q, want Medium", resp.UrgencyLevel)
	}
	if resp.AdditionalNotes == "" {
		t.Error("AdditionalNotes empty, want disclaimer")
	}
}

func TestAnalyzeFillsMissingModelFields(t *testing.T) {
	tests := []struct {
		name          string
		reply         string
		wantUrgency   string
		wantSpecialty string
	}{
		{
			"empty object",
			`{}`,
			"Medium",
			"General Medicine",
		},
		{
			"unknown urgency clamped",
			`{"analysis": "x", "recommended_specialties": ["Dermatology"], "urgency_level": "Catastrophic"}`,
			"Medium",
			"Dermatology",
		},
		{
			"valid urgency kept",
			`{"analysis": "x", "recommended_specialties": ["Dermatology"], "urgency_level": "Low"}`,
			"Low",
			"Dermatology",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewTriageUsecase(testDB(), testLogger(), newStubDoctorRepo(), &stubChat{reply: tt.reply}, &stubAuditService{})

			resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "itchy rash"})
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			if resp.UrgencyLevel != tt.wantUrgency {
				t.Errorf("UrgencyLevel = %q, want %q", resp.UrgencyLevel, tt.wantUrgency)
			}
			if len(resp.RecommendedSpecialties) == 0 || resp.RecommendedSpecialties[0] != tt.wantSpecialty {
				t.Errorf("RecommendedSpecialties = %v, want leading %q", resp.RecommendedSpecialties, tt.wantSpecialty)
			}
			if resp.Analysis == "" {
				t.Error("Analysis empty after defaulting")
			}
		})
	}
}

func TestAnalyzeChatFailureFallsBack(t *testing.T) {
	generalist := triageDoctor("Dr. Broad", "General Medicine")
	doctorRepo := newStubDoctorRepo()
	doctorRepo.bySpecialty["General Medicine"] = []entity.Doctor{generalist}

	u := NewTriageUsecase(testDB(), testLogger(), doctorRepo, &stubChat{err: errors.New("gateway timeout")}, &stubAuditService{})

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "mild headache"})
	if err != nil {
		t.Fatalf("Analyze() error = %v, degradation must not surface", err)
	}
	if resp.Analysis != fallbackAnalysis {
		t.Errorf("Analysis = %q, want fallback text", resp.Analysis)
	}
	if len(resp.RecommendedSpecialties) != 2 {
		t.Errorf("RecommendedSpecialties = %v, want both fallback specialties", resp.RecommendedSpecialties)
	}
	if len(resp.RecommendedDoctors) != 1 {
		t.Fatalf("RecommendedDoctors = %d, want 1", len(resp.RecommendedDoctors))
	}
	if resp.RecommendedDoctors[0].MatchReason != "General consultation" {
		t.Errorf("MatchReason = %q", resp.RecommendedDoctors[0].MatchReason)
	}
	if resp.UrgencyLevel != "Medium" {
		t.Errorf("UrgencyLevel = %q, want Medium", resp.UrgencyLevel)
	}
}

func TestAnalyzeDeduplicatesDoctors(t *testing.T) {
	generalist := triageDoctor("Dr. Broad", "General Medicine", "Internal Medicine")
	doctorRepo := newStubDoctorRepo()
	doctorRepo.bySpecialty["General Medicine"] = []entity.Doctor{generalist}
	doctorRepo.bySpecialty["Internal Medicine"] = []entity.Doctor{generalist}

	chat := &stubChat{reply: `{
		"analysis": "x",
		"recommended_specialties": ["General Medicine", "Internal Medicine"],
		"urgency_level": "Low",
		"additional_notes": "y"
	}`}
	u := NewTriageUsecase(testDB(), testLogger(), doctorRepo, chat, &stubAuditService{})

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "fatigue"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.RecommendedDoctors) != 1 {
		t.Fatalf("RecommendedDoctors = %d, want the shared doctor once", len(resp.RecommendedDoctors))
	}
	// First matching specialty wins the reason
	if resp.RecommendedDoctors[0].MatchReason != "Specialized in General Medicine" {
		t.Errorf("MatchReason = %q", resp.RecommendedDoctors[0].MatchReason)
	}
}

func TestAnalyzeCapsDoctorsPerSpecialty(t *testing.T) {
	doctorRepo := newStubDoctorRepo()
	for i := 0; i < 5; i++ {
		doctorRepo.bySpecialty["Cardiology"] = append(doctorRepo.bySpecialty["Cardiology"], triageDoctor("Dr. Heart", "Cardiology"))
	}

	chat := &stubChat{reply: `{"analysis": "x", "recommended_specialties": ["Cardiology"], "urgency_level": "High"}`}
	u := NewTriageUsecase(testDB(), testLogger(), doctorRepo, chat, &stubAuditService{})

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "palpitations"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.RecommendedDoctors) != maxDoctorsPerSpecialty {
		t.Errorf("RecommendedDoctors = %d, want capped at %d", len(resp.RecommendedDoctors), maxDoctorsPerSpecialty)
	}
}

func TestAnalyzeSkipsUnresolvedDoctorUsers(t *testing.T) {
	resolved := triageDoctor("Dr. Heart", "Cardiology")
	orphaned := entity.Doctor{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		Specializations: entity.StringList{"Cardiology"},
		IsAvailable:     true,
	}
	doctorRepo := newStubDoctorRepo()
	doctorRepo.bySpecialty["Cardiology"] = []entity.Doctor{orphaned, resolved}

	chat := &stubChat{reply: `{"analysis": "x", "recommended_specialties": ["Cardiology"], "urgency_level": "High"}`}
	u := NewTriageUsecase(testDB(), testLogger(), doctorRepo, chat, &stubAuditService{})

	resp, err := u.Analyze(context.Background(), &dto.AnalyzeSymptomsRequest{Symptoms: "palpitations"})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(resp.RecommendedDoctors) != 1 {
		t.Fatalf("RecommendedDoctors = %d, want 1", len(resp.RecommendedDoctors))
	}
	if resp.RecommendedDoctors[0].Doctor.Name != "Dr. Heart" {
		t.Errorf("recommended doctor = %q, want Dr. Heart", resp.RecommendedDoctors[0].Doctor.Name)
	}
}
