package usecase

import (
	"context"
	"errors"

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

var (
	ErrDoctorUnavailable   = errors.New("doctor not found or unavailable")
	ErrSlotTaken           = errors.New("time slot already booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrAppointmentNotOwned = errors.New("appointment does not belong to you")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

// Listings are capped to keep responses bounded.
const maxListResults = 100

type AppointmentUsecase interface {
	Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error)
	List(ctx context.Context) ([]dto.AppointmentResponse, error)
	Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Book creates an appointment for the authenticated patient.
//
// Flow:
// 1. Resolve doctor; missing or flagged unavailable -> ErrDoctorUnavailable
// 2. Check the exact slot for a non-cancelled appointment -> ErrSlotTaken.
//    Only identical start times conflict; overlapping durations are out
//    of scope.
// 3. Insert; a unique violation from a concurrent booking of the same
//    slot also maps to ErrSlotTaken. The read in step 2 gives the common
//    case a friendly answer, the partial unique index is what actually
//    guards the race.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.CreateAppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsAvailable {
		return nil, ErrDoctorUnavailable
	}

	existing, err := u.appointmentRepo.FindActiveSlot(db, req.DoctorID, req.AppointmentDate)
	if err != nil {
		u.log.Warnf("Failed to check slot for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	appointment := &entity.Appointment{
		PatientID:       userID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		Symptoms:        req.Symptoms,
		Status:          entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		// Lost the race against a concurrent booking of the same slot
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "doctor") || isForeignKeyError(err, "patient") {
			return nil, ErrDoctorUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(ctx, db, &userID, entity.AuditActionAppointmentBook, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      appointment.DoctorID.String(),
	})

	u.log.Infof("Appointment booked: id=%s, doctor=%s, at=%s",
		appointment.ID, appointment.DoctorID, appointment.AppointmentDate)
	return &dto.CreateAppointmentResponse{
		Message:       "Appointment booked successfully",
		AppointmentID: appointment.ID,
	}, nil
}

// List returns appointments visible to the authenticated user: patients
// see their own, doctors see their practice, admins see everything.
// Rows whose patient or doctor user cannot be resolved are omitted.
func (u *appointmentUsecase) List(ctx context.Context) ([]dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}
	role, _ := middleware.GetUserRoleFromContext(ctx)

	db := u.db.WithContext(ctx)

	var (
		appointments []entity.Appointment
		err          error
	)

	switch role {
	case entity.RoleDoctor:
		doctor, findErr := u.doctorRepo.FindByUserID(db, userID)
		if findErr != nil {
			u.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, findErr)
			return nil, findErr
		}
		if doctor == nil {
			// Doctor account without a profile has nothing to see
			return []dto.AppointmentResponse{}, nil
		}
		appointments, err = u.appointmentRepo.FindByDoctorID(db, doctor.ID, maxListResults)
	case entity.RoleAdmin:
		appointments, err = u.appointmentRepo.FindAll(db, maxListResults)
	default:
		appointments, err = u.appointmentRepo.FindByPatientID(db, userID, maxListResults)
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments for %s: %+v", userID, err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// Update applies a partial change to an appointment. Nil fields are left
// unchanged. A date change re-runs the slot conflict check against other
// non-cancelled appointments of the same doctor.
func (u *appointmentUsecase) Update(ctx context.Context, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}
	role, _ := middleware.GetUserRoleFromContext(ctx)

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	switch role {
	case entity.RoleAdmin:
		// admins may update any appointment
	case entity.RoleDoctor:
		doctor, findErr := u.doctorRepo.FindByUserID(db, userID)
		if findErr != nil {
			u.log.Warnf("Failed to find doctor profile for user %s: %+v", userID, findErr)
			return findErr
		}
		if doctor == nil || appointment.DoctorID != doctor.ID {
			return ErrAppointmentNotOwned
		}
	default:
		if appointment.PatientID != userID {
			return ErrAppointmentNotOwned
		}
	}

	if req.AppointmentDate != nil && !req.AppointmentDate.Equal(appointment.AppointmentDate) {
		existing, findErr := u.appointmentRepo.FindActiveSlot(db, appointment.DoctorID, *req.AppointmentDate)
		if findErr != nil {
			u.log.Warnf("Failed to check slot for doctor %s: %+v", appointment.DoctorID, findErr)
			return findErr
		}
		if existing != nil && existing.ID != appointment.ID {
			return ErrSlotTaken
		}
		appointment.AppointmentDate = *req.AppointmentDate
	}
	if req.Status != nil {
		status := entity.AppointmentStatus(*req.Status)
		if !entity.ValidAppointmentStatus(status) {
			return ErrInvalidStatus
		}
		appointment.Status = status
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}

	if err := u.appointmentRepo.Update(db, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return ErrSlotTaken
		}
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return err
	}

	u.auditService.Log(ctx, db, &userID, entity.AuditActionAppointmentUpdate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"status":         string(appointment.Status),
	})

	return nil
}
