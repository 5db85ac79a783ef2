package usecase

import (
	"context"
	"io"
	"time"

	"hospital-booking/internal/delivery/dto"
	"hospital-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// Constraint violations as the postgres driver reports them.
var (
	errDuplicateEmail = &pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"}
	errDuplicateSlot  = &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_doctor_slot"}
	errDuplicateUser  = &pgconn.PgError{Code: "23505", ConstraintName: "uq_doctors_user_id"}
	errDoctorFK       = &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_doctor"}
)

// The repositories receive the db handle as an argument and the stubs
// ignore it, so a dummy-dialector handle is enough for the usecases under
// test. A hand-built gorm.DB would not survive WithContext.
func testDB() *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	if err != nil {
		panic(err)
	}
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type stubAuditService struct {
	actions []string
}

func (s *stubAuditService) Log(ctx context.Context, db *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	s.actions = append(s.actions, action)
	return nil
}

type stubUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(db *gorm.DB, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type stubDoctorRepo struct {
	doctors     map[uuid.UUID]*entity.Doctor
	bySpecialty map[string][]entity.Doctor
	available   []entity.Doctor

	createErr        error
	findAllCalled    bool
	specialtyQueries []string
}

func newStubDoctorRepo(doctors ...*entity.Doctor) *stubDoctorRepo {
	repo := &stubDoctorRepo{
		doctors:     make(map[uuid.UUID]*entity.Doctor),
		bySpecialty: make(map[string][]entity.Doctor),
	}
	for _, d := range doctors {
		repo.doctors[d.ID] = d
	}
	return repo
}

func (r *stubDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if r.createErr != nil {
		return r.createErr
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *stubDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.doctors[id], nil
}

func (r *stubDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (r *stubDoctorRepo) FindAllAvailable(db *gorm.DB, limit int) ([]entity.Doctor, error) {
	r.findAllCalled = true
	return r.available, nil
}

func (r *stubDoctorRepo) FindAvailableBySpecialty(db *gorm.DB, specialty string, limit int) ([]entity.Doctor, error) {
	r.specialtyQueries = append(r.specialtyQueries, specialty)
	doctors := r.bySpecialty[specialty]
	if len(doctors) > limit {
		doctors = doctors[:limit]
	}
	return doctors, nil
}

func (r *stubDoctorRepo) FindAvailableBySpecialties(db *gorm.DB, specialties []string, limit int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	seen := make(map[uuid.UUID]bool)
	for _, specialty := range specialties {
		for _, d := range r.bySpecialty[specialty] {
			if seen[d.ID] || len(doctors) >= limit {
				continue
			}
			seen[d.ID] = true
			doctors = append(doctors, d)
		}
	}
	return doctors, nil
}

// memAppointmentRepo keeps appointments in memory with the same slot
// semantics as the database: a slot is occupied by any non-cancelled
// appointment at the exact same instant.
type memAppointmentRepo struct {
	appointments []*entity.Appointment
	createErr    error
	updateErr    error

	byPatientCalled bool
	byDoctorCalled  bool
	findAllCalled   bool
}

func (r *memAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.appointments = append(r.appointments, appointment)
	return nil
}

func (r *memAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindActiveSlot(db *gorm.DB, doctorID uuid.UUID, at time.Time) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.DoctorID == doctorID && a.AppointmentDate.Equal(at) && !a.IsCancelled() {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID, limit int) ([]entity.Appointment, error) {
	r.byPatientCalled = true
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID, limit int) ([]entity.Appointment, error) {
	r.byDoctorCalled = true
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) FindAll(db *gorm.DB, limit int) ([]entity.Appointment, error) {
	r.findAllCalled = true
	var out []entity.Appointment
	for _, a := range r.appointments {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for i, a := range r.appointments {
		if a.ID == appointment.ID {
			r.appointments[i] = appointment
			return nil
		}
	}
	return nil
}

type stubDoctorCache struct {
	data        []dto.DoctorResponse
	hit         bool
	setCalled   bool
	invalidated bool
}

func (c *stubDoctorCache) Get(ctx context.Context) ([]dto.DoctorResponse, bool) {
	return c.data, c.hit
}

func (c *stubDoctorCache) Set(ctx context.Context, doctors []dto.DoctorResponse) {
	c.setCalled = true
	c.data = doctors
}

func (c *stubDoctorCache) Invalidate(ctx context.Context) {
	c.invalidated = true
	c.data = nil
	c.hit = false
}

type stubChat struct {
	reply string
	err   error
}

func (c *stubChat) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return c.reply, c.err
}
