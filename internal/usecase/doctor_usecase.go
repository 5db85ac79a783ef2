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

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorUserNotFound  = errors.New("user not found")
	ErrUserNotDoctorRole   = errors.New("user does not have the doctor role")
	ErrDoctorProfileExists = errors.New("doctor profile already exists for this user")
)

// DoctorListCache is the best-effort cache in front of the public doctor
// listing.
type DoctorListCache interface {
	Get(ctx context.Context) ([]dto.DoctorResponse, bool)
	Set(ctx context.Context, doctors []dto.DoctorResponse)
	Invalidate(ctx context.Context)
}

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.CreateDoctorResponse, error)
	GetAvailableDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	cache        DoctorListCache
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	cache DoctorListCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		cache:        cache,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.CreateDoctorResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", req.UserID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrDoctorUserNotFound
	}
	if !user.IsDoctor() {
		return nil, ErrUserNotDoctorRole
	}

	doctor := &entity.Doctor{
		UserID:          req.UserID,
		Specializations: entity.StringList(req.Specializations),
		ExperienceYears: req.ExperienceYears,
		Qualifications:  req.Qualifications,
		ConsultationFee: req.ConsultationFee,
		AvailableDays:   entity.StringList(req.AvailableDays),
		AvailableHours:  entity.HourMap(req.AvailableHours),
		IsAvailable:     true,
	}

	if err := u.doctorRepo.Create(db, doctor); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrDoctorProfileExists
		}
		if isForeignKeyError(err, "user") {
			return nil, ErrDoctorUserNotFound
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	adminID, _ := middleware.GetUserIDFromContext(ctx)
	u.auditService.Log(ctx, db, &adminID, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id": doctor.ID.String(),
		"user_id":   doctor.UserID.String(),
	})

	u.cache.Invalidate(ctx)

	u.log.Infof("Doctor created: id=%s, user=%s", doctor.ID, doctor.UserID)
	return &dto.CreateDoctorResponse{
		Message:  "Doctor created successfully",
		DoctorID: doctor.ID,
	}, nil
}

// GetAvailableDoctors serves the public directory listing. The Redis cache
// absorbs repeated anonymous reads; misses fall through to the database.
func (u *doctorUsecase) GetAvailableDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	if doctors, ok := u.cache.Get(ctx); ok {
		return doctors, nil
	}

	doctors, err := u.doctorRepo.FindAllAvailable(u.db.WithContext(ctx), maxListResults)
	if err != nil {
		u.log.Warnf("Failed to list available doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)
	u.cache.Set(ctx, responses)

	return responses, nil
}
