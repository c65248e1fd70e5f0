package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kaduart/agenda-clinica-service/internal/delivery/http/handler"
	"github.com/kaduart/agenda-clinica-service/internal/delivery/http/middleware"
)

type Router struct {
	router                *mux.Router
	patientHandler        *handler.PatientHandler
	professionalHandler   *handler.ProfessionalHandler
	specialtyHandler      *handler.SpecialtyHandler
	appointmentHandler    *handler.AppointmentHandler
	preAppointmentHandler *handler.PreAppointmentHandler
	cycleHandler          *handler.CycleHandler
	duplicateHandler      *handler.DuplicateHandler
	corsMiddleware        *middleware.CORSMiddleware
	loggingMiddleware     *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	professionalHandler *handler.ProfessionalHandler,
	specialtyHandler *handler.SpecialtyHandler,
	appointmentHandler *handler.AppointmentHandler,
	preAppointmentHandler *handler.PreAppointmentHandler,
	cycleHandler *handler.CycleHandler,
	duplicateHandler *handler.DuplicateHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		patientHandler:        patientHandler,
		professionalHandler:   professionalHandler,
		specialtyHandler:      specialtyHandler,
		appointmentHandler:    appointmentHandler,
		preAppointmentHandler: preAppointmentHandler,
		cycleHandler:          cycleHandler,
		duplicateHandler:      duplicateHandler,
		corsMiddleware:        corsMiddleware,
		loggingMiddleware:     loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.SearchPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Professionals
	api.HandleFunc("/professionals", r.professionalHandler.CreateProfessional).Methods(http.MethodPost)
	api.HandleFunc("/professionals", r.professionalHandler.GetAllProfessionals).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{id}", r.professionalHandler.GetProfessional).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{id}", r.professionalHandler.UpdateProfessional).Methods(http.MethodPut)
	api.HandleFunc("/professionals/{id}", r.professionalHandler.DeleteProfessional).Methods(http.MethodDelete)

	// Specialty catalog
	api.HandleFunc("/specialties", r.specialtyHandler.CreateSpecialty).Methods(http.MethodPost)
	api.HandleFunc("/specialties", r.specialtyHandler.GetAllSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{id}", r.specialtyHandler.GetSpecialty).Methods(http.MethodGet)
	api.HandleFunc("/specialties/{id}", r.specialtyHandler.UpdateSpecialty).Methods(http.MethodPut)
	api.HandleFunc("/specialties/{id}", r.specialtyHandler.DeleteSpecialty).Methods(http.MethodDelete)

	// Appointments
	api.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/confirm", r.appointmentHandler.ConfirmAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Recurring cycles
	api.HandleFunc("/cycles/preview", r.cycleHandler.PreviewCycle).Methods(http.MethodPost)
	api.HandleFunc("/cycles", r.cycleHandler.CommitCycle).Methods(http.MethodPost)

	// Pre-appointments
	api.HandleFunc("/pre-appointments", r.preAppointmentHandler.CreatePreAppointment).Methods(http.MethodPost)
	api.HandleFunc("/pre-appointments", r.preAppointmentHandler.ListPreAppointments).Methods(http.MethodGet)
	api.HandleFunc("/pre-appointments/{id}/confirm", r.preAppointmentHandler.ConfirmPreAppointment).Methods(http.MethodPost)
	api.HandleFunc("/pre-appointments/{id}/reject", r.preAppointmentHandler.RejectPreAppointment).Methods(http.MethodPost)

	// Admin: duplicate inspection
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/patients/duplicates", r.duplicateHandler.ListDuplicateGroups).Methods(http.MethodGet)

	// Global middleware
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
