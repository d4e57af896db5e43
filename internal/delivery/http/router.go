package http

import (
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/handler"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	adminHandler         *handler.AdminHandler
	doctorHandler        *handler.DoctorHandler
	availabilityHandler  *handler.AvailabilityHandler
	appointmentHandler   *handler.AppointmentHandler
	prescriptionHandler  *handler.PrescriptionHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	messageHandler       *handler.MessageHandler
	dashboardHandler     *handler.DashboardHandler
	authMiddleware       *middleware.AuthMiddleware
	roleMiddleware       *middleware.RoleMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	doctorHandler *handler.DoctorHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	messageHandler *handler.MessageHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		adminHandler:         adminHandler,
		doctorHandler:        doctorHandler,
		availabilityHandler:  availabilityHandler,
		appointmentHandler:   appointmentHandler,
		prescriptionHandler:  prescriptionHandler,
		medicalRecordHandler: medicalRecordHandler,
		messageHandler:       messageHandler,
		dashboardHandler:     dashboardHandler,
		authMiddleware:       authMiddleware,
		roleMiddleware:       roleMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", r.authHandler.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/resend-otp", r.authHandler.ResendOTP).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/check-email", r.authHandler.CheckEmail).Methods(http.MethodGet)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Public doctor directory and guest booking
	api.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.availabilityHandler.GetDoctorAvailability).Methods(http.MethodGet)
	api.HandleFunc("/appointments/guest", r.appointmentHandler.BookGuest).Methods(http.MethodPost)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.roleMiddleware.RequireAdmin())
	admin.HandleFunc("/doctors/pending", r.adminHandler.ListPendingDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/approve", r.adminHandler.ApproveDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reject", r.adminHandler.RejectDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/users/{id}", r.adminHandler.DeleteUser).Methods(http.MethodDelete)

	// Availability management (doctor only)
	availability := api.PathPrefix("/availability").Subrouter()
	availability.Use(r.authMiddleware.Authenticate)
	availability.Use(r.roleMiddleware.RequireDoctor())
	availability.HandleFunc("", r.availabilityHandler.GetMyAvailability).Methods(http.MethodGet)
	availability.HandleFunc("", r.availabilityHandler.UpsertAvailability).Methods(http.MethodPut)
	availability.HandleFunc("/slots", r.availabilityHandler.AddSlot).Methods(http.MethodPost)
	availability.HandleFunc("/slots/{id}", r.availabilityHandler.DeleteSlot).Methods(http.MethodDelete)
	availability.HandleFunc("/leave", r.availabilityHandler.SetLeave).Methods(http.MethodPut)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	// Registered before /{id} so "pending" is not parsed as an id.
	appointments.Handle("/pending", r.roleMiddleware.RequireDoctor()(http.HandlerFunc(r.appointmentHandler.ListPending))).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/video/join", r.appointmentHandler.JoinVideoCall).Methods(http.MethodPost)

	appointmentsPatient := api.PathPrefix("/appointments").Subrouter()
	appointmentsPatient.Use(r.authMiddleware.Authenticate)
	appointmentsPatient.Use(r.roleMiddleware.RequirePatient())
	appointmentsPatient.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)

	appointmentsDoctor := api.PathPrefix("/appointments").Subrouter()
	appointmentsDoctor.Use(r.authMiddleware.Authenticate)
	appointmentsDoctor.Use(r.roleMiddleware.RequireDoctor())
	appointmentsDoctor.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	appointmentsDoctor.HandleFunc("/{id}/notes", r.appointmentHandler.AddNotes).Methods(http.MethodPut)
	appointmentsDoctor.HandleFunc("/{id}/video/start", r.appointmentHandler.StartVideoCall).Methods(http.MethodPost)
	appointmentsDoctor.HandleFunc("/{id}/video/end", r.appointmentHandler.EndVideoCall).Methods(http.MethodPost)

	// Prescriptions
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.HandleFunc("", r.prescriptionHandler.List).Methods(http.MethodGet)
	prescriptions.HandleFunc("/{id}", r.prescriptionHandler.Get).Methods(http.MethodGet)

	prescriptionsDoctor := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionsDoctor.Use(r.authMiddleware.Authenticate)
	prescriptionsDoctor.Use(r.roleMiddleware.RequireDoctor())
	prescriptionsDoctor.HandleFunc("", r.prescriptionHandler.Create).Methods(http.MethodPost)
	prescriptionsDoctor.HandleFunc("/{id}", r.prescriptionHandler.Update).Methods(http.MethodPut)
	prescriptionsDoctor.HandleFunc("/{id}", r.prescriptionHandler.Delete).Methods(http.MethodDelete)

	prescriptionsPatient := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionsPatient.Use(r.authMiddleware.Authenticate)
	prescriptionsPatient.Use(r.roleMiddleware.RequirePatient())
	prescriptionsPatient.HandleFunc("/{id}/refill", r.prescriptionHandler.RequestRefill).Methods(http.MethodPost)

	// Medical records
	records := api.PathPrefix("/medical-records").Subrouter()
	records.Use(r.authMiddleware.Authenticate)
	records.HandleFunc("", r.medicalRecordHandler.List).Methods(http.MethodGet)
	records.HandleFunc("/{id}", r.medicalRecordHandler.Get).Methods(http.MethodGet)

	recordsDoctor := api.PathPrefix("/medical-records").Subrouter()
	recordsDoctor.Use(r.authMiddleware.Authenticate)
	recordsDoctor.Use(r.roleMiddleware.RequireDoctor())
	recordsDoctor.HandleFunc("", r.medicalRecordHandler.Create).Methods(http.MethodPost)
	recordsDoctor.HandleFunc("/{id}", r.medicalRecordHandler.Update).Methods(http.MethodPut)
	recordsDoctor.HandleFunc("/{id}", r.medicalRecordHandler.Delete).Methods(http.MethodDelete)

	// Messages
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(r.authMiddleware.Authenticate)
	messages.HandleFunc("", r.messageHandler.Send).Methods(http.MethodPost)
	messages.HandleFunc("", r.messageHandler.Inbox).Methods(http.MethodGet)
	messages.HandleFunc("/conversation/{id}", r.messageHandler.Conversation).Methods(http.MethodGet)
	messages.HandleFunc("/{id}/reply", r.messageHandler.Reply).Methods(http.MethodPost)
	messages.HandleFunc("/{id}/read", r.messageHandler.MarkRead).Methods(http.MethodPut)

	// Dashboards
	dashboard := api.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(r.authMiddleware.Authenticate)
	dashboard.HandleFunc("", r.dashboardHandler.Get).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
