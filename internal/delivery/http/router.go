package http

import (
	"net/http"

	"hospital-booking/internal/delivery/http/handler"
	"hospital-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	appointmentHandler *handler.AppointmentHandler
	triageHandler      *handler.TriageHandler
	sampleDataHandler  *handler.SampleDataHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	triageHandler *handler.TriageHandler,
	sampleDataHandler *handler.SampleDataHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		appointmentHandler: appointmentHandler,
		triageHandler:      triageHandler,
		sampleDataHandler:  sampleDataHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/doctors", r.doctorHandler.GetDoctors).Methods(http.MethodGet)
	api.HandleFunc("/create-sample-data", r.sampleDataHandler.CreateSampleData).Methods(http.MethodPost)

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(r.authMiddleware.Authenticate)
	authed.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authed.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	authed.Handle("/appointments/{id}", http.HandlerFunc(r.appointmentHandler.Update)).Methods(http.MethodPut)

	// Symptom triage: patients and admins, never doctors
	triage := api.NewRoute().Subrouter()
	triage.Use(r.authMiddleware.Authenticate)
	triage.Use(middleware.RequirePatientOrAdmin)
	triage.HandleFunc("/analyze-symptoms", r.triageHandler.AnalyzeSymptoms).Methods(http.MethodPost)

	// Booking: patients only
	booking := api.NewRoute().Subrouter()
	booking.Use(r.authMiddleware.Authenticate)
	booking.Use(middleware.RequirePatient)
	booking.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)

	// Doctor management: admins only
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
