package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/usecase"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/response"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book books an appointment for the authenticated patient
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked", appointment)
}

// BookGuest books an appointment without an account
// @Summary Book a guest appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param request body dto.GuestAppointmentRequest true "Guest Appointment"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/guest [post]
func (h *AppointmentHandler) BookGuest(w http.ResponseWriter, r *http.Request) {
	var req dto.GuestAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.BookGuest(r.Context(), &req)
	if err != nil {
		h.writeBookingError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked", appointment)
}

// List returns the caller's appointments, patient or doctor
// @Summary List own appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	var (
		appointments *dto.AppointmentListResponse
		err          error
	)
	if role == string(entity.RoleDoctor) {
		appointments, err = h.appointmentUsecase.ListForDoctor(r.Context(), userID)
	} else {
		appointments, err = h.appointmentUsecase.ListForPatient(r.Context(), userID)
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved", appointments)
}

// ListPending returns the doctor's appointments still awaiting confirmation
// @Summary List pending appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/pending [get]
func (h *AppointmentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListPendingForDoctor(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list pending appointments")
		return
	}

	response.Success(w, http.StatusOK, "Pending appointments retrieved", appointments)
}

// Get returns a single appointment
// @Summary Get an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), userID, role, id)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved", appointment)
}

// UpdateStatus moves the appointment through its lifecycle
// @Summary Update appointment status
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	doctorID, _, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), doctorID, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated", appointment)
}

// Cancel cancels an appointment
// @Summary Cancel an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, role, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	json.NewDecoder(r.Body).Decode(&req)

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), userID, role, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled", appointment)
}

// AddNotes attaches consultation notes
// @Summary Add consultation notes
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.AppointmentNotesRequest true "Notes"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/notes [put]
func (h *AppointmentHandler) AddNotes(w http.ResponseWriter, r *http.Request) {
	doctorID, _, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	var req dto.AppointmentNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.AddNotes(r.Context(), doctorID, id, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Notes updated", appointment)
}

// StartVideoCall creates the video room and returns a doctor token
// @Summary Start the video consultation
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/video/start [post]
func (h *AppointmentHandler) StartVideoCall(w http.ResponseWriter, r *http.Request) {
	doctorID, _, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	token, err := h.appointmentUsecase.StartVideoCall(r.Context(), doctorID, id)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Video call started", token)
}

// JoinVideoCall returns a participant token for an active room
// @Summary Join the video consultation
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/video/join [post]
func (h *AppointmentHandler) JoinVideoCall(w http.ResponseWriter, r *http.Request) {
	userID, role, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	token, err := h.appointmentUsecase.JoinVideoCall(r.Context(), userID, role, id)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Video token issued", token)
}

// EndVideoCall completes the consultation
// @Summary End the video consultation
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Router /appointments/{id}/video/end [post]
func (h *AppointmentHandler) EndVideoCall(w http.ResponseWriter, r *http.Request) {
	doctorID, _, id, ok := h.callerAndID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.EndVideoCall(r.Context(), doctorID, id)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Video call ended", appointment)
}

func (h *AppointmentHandler) callerAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return uuid.Nil, "", uuid.Nil, false
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, "", uuid.Nil, false
	}
	return userID, role, id, true
}

func (h *AppointmentHandler) writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrSlotAlreadyBooked):
		response.Conflict(w, "The selected slot is already booked")
	case errors.Is(err, usecase.ErrDoctorNotFound):
		response.NotFound(w, "Doctor not found")
	case errors.Is(err, usecase.ErrAppointmentInPast),
		errors.Is(err, usecase.ErrDoctorOnLeave),
		errors.Is(err, usecase.ErrOutsideAvailability),
		errors.Is(err, usecase.ErrInvalidDateFormat):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to book appointment")
	}
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrAppointmentNotFound):
		response.NotFound(w, "Appointment not found")
	case errors.Is(err, usecase.ErrNotParticipant):
		response.Forbidden(w, "Not a participant of this appointment")
	case errors.Is(err, usecase.ErrInvalidStatusTransition),
		errors.Is(err, usecase.ErrNotCancellable),
		errors.Is(err, usecase.ErrVideoNotStarted):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to process appointment")
	}
}
