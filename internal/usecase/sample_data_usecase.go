package usecase

import (
	"context"
	"errors"

	"hospital-booking/internal/domain/entity"
	"hospital-booking/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrSampleDataExists = errors.New("sample data already created")

// SampleDataUsecase seeds a demo admin and a few doctors for manual
// testing. Not meant for production environments.
type SampleDataUsecase interface {
	CreateSampleData(ctx context.Context) error
}

type sampleDataUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	cache      DoctorListCache
}

func NewSampleDataUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	cache DoctorListCache,
) SampleDataUsecase {
	return &sampleDataUsecase{
		db:         db,
		log:        log,
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		cache:      cache,
	}
}

type sampleDoctor struct {
	email           string
	name            string
	phone           string
	specializations []string
	experienceYears int
	qualifications  string
	consultationFee string
	availableDays   []string
	availableHours  map[string][]string
}

var sampleDoctors = []sampleDoctor{
	{
		email:           "dr.smith@hospital.com",
		name:            "Dr. John Smith",
		phone:           "1234567891",
		specializations: []string{"Cardiology", "Internal Medicine"},
		experienceYears: 15,
		qualifications:  "MD, FACC",
		consultationFee: "200.00",
		availableDays:   []string{"Monday", "Wednesday", "Friday"},
		availableHours: map[string][]string{
			"Monday":    {"09:00", "10:00", "11:00", "14:00", "15:00"},
			"Wednesday": {"09:00", "10:00", "11:00", "14:00", "15:00"},
			"Friday":    {"09:00", "10:00", "11:00", "14:00", "15:00"},
		},
	},
	{
		email:           "dr.jones@hospital.com",
		name:            "Dr. Sarah Jones",
		phone:           "1234567892",
		specializations: []string{"Dermatology", "Cosmetic Surgery"},
		experienceYears: 12,
		qualifications:  "MD, Board Certified Dermatologist",
		consultationFee: "150.00",
		availableDays:   []string{"Tuesday", "Thursday", "Saturday"},
		availableHours: map[string][]string{
			"Tuesday":  {"10:00", "11:00", "14:00", "15:00", "16:00"},
			"Thursday": {"10:00", "11:00", "14:00", "15:00", "16:00"},
			"Saturday": {"09:00", "10:00", "11:00"},
		},
	},
	{
		email:           "dr.brown@hospital.com",
		name:            "Dr. Michael Brown",
		phone:           "1234567893",
		specializations: []string{"Orthopedics", "Sports Medicine"},
		experienceYears: 18,
		qualifications:  "MD, Orthopedic Surgeon",
		consultationFee: "250.00",
		availableDays:   []string{"Monday", "Tuesday", "Thursday"},
		availableHours: map[string][]string{
			"Monday":   {"08:00", "09:00", "13:00", "14:00"},
			"Tuesday":  {"08:00", "09:00", "13:00", "14:00"},
			"Thursday": {"08:00", "09:00", "13:00", "14:00"},
		},
	},
}

func (u *sampleDataUsecase) CreateSampleData(ctx context.Context) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	adminPassword, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &entity.User{
		Email:        "admin@hospital.com",
		Name:         "Hospital Admin",
		Phone:        "1234567890",
		PasswordHash: string(adminPassword),
		Role:         entity.RoleAdmin,
	}
	if err := u.userRepo.Create(tx, admin); err != nil {
		if isDuplicateKeyError(err, "email") {
			return ErrSampleDataExists
		}
		u.log.Warnf("Failed to create sample admin: %+v", err)
		return err
	}

	doctorPassword, err := bcrypt.GenerateFromPassword([]byte("doctor123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for _, sample := range sampleDoctors {
		fee, err := decimal.NewFromString(sample.consultationFee)
		if err != nil {
			return err
		}

		user := &entity.User{
			Email:        sample.email,
			Name:         sample.name,
			Phone:        sample.phone,
			PasswordHash: string(doctorPassword),
			Role:         entity.RoleDoctor,
		}
		if err := u.userRepo.Create(tx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrSampleDataExists
			}
			u.log.Warnf("Failed to create sample doctor user: %+v", err)
			return err
		}

		doctor := &entity.Doctor{
			UserID:          user.ID,
			Specializations: entity.StringList(sample.specializations),
			ExperienceYears: sample.experienceYears,
			Qualifications:  sample.qualifications,
			ConsultationFee: fee,
			AvailableDays:   entity.StringList(sample.availableDays),
			AvailableHours:  entity.HourMap(sample.availableHours),
			IsAvailable:     true,
		}
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			u.log.Warnf("Failed to create sample doctor profile: %+v", err)
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.cache.Invalidate(ctx)

	u.log.Info("Sample data created")
	return nil
}
