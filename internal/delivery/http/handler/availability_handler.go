package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/dto"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/usecase"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/response"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

// GetMyAvailability returns the authenticated doctor's availability
// @Summary Get own availability
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /availability [get]
func (h *AvailabilityHandler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to load availability")
		return
	}
	response.Success(w, http.StatusOK, "Availability retrieved", availability)
}

// GetDoctorAvailability returns a doctor's availability for the booking flow
// @Summary Get a doctor's availability
// @Tags Availability
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Router /doctors/{id}/availability [get]
func (h *AvailabilityHandler) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		response.InternalServerError(w, "Failed to load availability")
		return
	}
	response.Success(w, http.StatusOK, "Availability retrieved", availability)
}

// UpsertAvailability replaces the doctor's weekly slots
// @Summary Replace weekly availability
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpsertAvailabilityRequest true "Availability"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /availability [put]
func (h *AvailabilityHandler) UpsertAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpsertAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.UpsertAvailability(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Availability updated", availability)
}

// AddSlot adds a single weekly slot
// @Summary Add a time slot
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TimeSlotRequest true "Time Slot"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /availability/slots [post]
func (h *AvailabilityHandler) AddSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.TimeSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.AddSlot(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Time slot added", availability)
}

// DeleteSlot removes a weekly slot
// @Summary Delete a time slot
// @Tags Availability
// @Security BearerAuth
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /availability/slots/{id} [delete]
func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slotID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteSlot(r.Context(), doctorID, slotID); err != nil {
		if errors.Is(err, usecase.ErrSlotNotFound) {
			response.NotFound(w, "Time slot not found")
			return
		}
		response.InternalServerError(w, "Failed to delete time slot")
		return
	}

	response.Success(w, http.StatusOK, "Time slot deleted", nil)
}

// SetLeave sets or clears the doctor's leave period
// @Summary Set leave period
// @Tags Availability
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetLeaveRequest true "Leave"
// @Success 200 {object} response.Response
// @Router /availability/leave [put]
func (h *AvailabilityHandler) SetLeave(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SetLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.SetLeave(r.Context(), doctorID, &req)
	if err != nil {
		h.writeAvailabilityError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Leave updated", availability)
}

func (h *AvailabilityHandler) writeAvailabilityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, usecase.ErrInvalidWeekday),
		errors.Is(err, usecase.ErrInvalidLeaveRange),
		errors.Is(err, usecase.ErrInvalidDateFormat):
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	default:
		response.InternalServerError(w, "Failed to update availability")
	}
}
