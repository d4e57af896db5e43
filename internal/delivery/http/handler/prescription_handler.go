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

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

// Create issues a prescription
// @Summary Create a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePrescriptionRequest true "Prescription"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /prescriptions [post]
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrAppointmentNotFound):
			response.NotFound(w, "Appointment not found")
		case errors.Is(err, usecase.ErrNoSharedAppointment),
			errors.Is(err, usecase.ErrInvalidDateFormat):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created", prescription)
}

// List returns the caller's prescriptions
// @Summary List own prescriptions
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /prescriptions [get]
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	var (
		prescriptions *dto.PrescriptionListResponse
		err           error
	)
	if role == string(entity.RoleDoctor) {
		prescriptions, err = h.prescriptionUsecase.ListForDoctor(r.Context(), userID)
	} else {
		prescriptions, err = h.prescriptionUsecase.ListForPatient(r.Context(), userID)
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved", prescriptions)
}

// Get returns a single prescription
// @Summary Get a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prescriptions/{id} [get]
func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	prescription, err := h.prescriptionUsecase.Get(r.Context(), userID, role, id)
	if err != nil {
		h.writePrescriptionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved", prescription)
}

// Update amends a prescription
// @Summary Update a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Prescription ID"
// @Param request body dto.UpdatePrescriptionRequest true "Prescription"
// @Success 200 {object} response.Response
// @Router /prescriptions/{id} [put]
func (h *PrescriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Update(r.Context(), doctorID, id, &req)
	if err != nil {
		h.writePrescriptionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription updated", prescription)
}

// Delete removes a prescription
// @Summary Delete a prescription
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Response
// @Router /prescriptions/{id} [delete]
func (h *PrescriptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	if err := h.prescriptionUsecase.Delete(r.Context(), doctorID, id); err != nil {
		h.writePrescriptionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription deleted", nil)
}

// RequestRefill records a refill on a refillable prescription
// @Summary Request a refill
// @Tags Prescriptions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Prescription ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /prescriptions/{id}/refill [post]
func (h *PrescriptionHandler) RequestRefill(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	prescription, err := h.prescriptionUsecase.RequestRefill(r.Context(), patientID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrRefillNotAllowed) {
			response.Error(w, http.StatusBadRequest, "Prescription cannot be refilled", nil)
			return
		}
		h.writePrescriptionError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Refill recorded", prescription)
}

func (h *PrescriptionHandler) writePrescriptionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrPrescriptionNotFound):
		response.NotFound(w, "Prescription not found")
	case errors.Is(err, usecase.ErrNotParticipant):
		response.Forbidden(w, "Not authorized for this prescription")
	default:
		response.InternalServerError(w, "Failed to process prescription")
	}
}
