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

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
	}
}

// Create adds a medical record for a patient
// @Summary Create a medical record
// @Tags MedicalRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMedicalRecordRequest true "Medical Record"
// @Success 201 {object} response.Response
// @Router /medical-records [post]
func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), doctorID, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		case errors.Is(err, usecase.ErrNoSharedAppointment):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created", record)
}

// List returns the caller's medical records
// @Summary List own medical records
// @Tags MedicalRecords
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /medical-records [get]
func (h *MedicalRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	var (
		records *dto.MedicalRecordListResponse
		err     error
	)
	if role == string(entity.RoleDoctor) {
		records, err = h.recordUsecase.ListForDoctor(r.Context(), userID)
	} else {
		records, err = h.recordUsecase.ListForPatient(r.Context(), userID)
	}
	if err != nil {
		response.InternalServerError(w, "Failed to list medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved", records)
}

// Get returns a single record
// @Summary Get a medical record
// @Tags MedicalRecords
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /medical-records/{id} [get]
func (h *MedicalRecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	record, err := h.recordUsecase.Get(r.Context(), userID, role, id)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved", record)
}

// Update amends a record
// @Summary Update a medical record
// @Tags MedicalRecords
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param request body dto.UpdateMedicalRecordRequest true "Medical Record"
// @Success 200 {object} response.Response
// @Router /medical-records/{id} [put]
func (h *MedicalRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.recordUsecase.Update(r.Context(), doctorID, id, &req)
	if err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated", record)
}

// Delete removes a record
// @Summary Delete a medical record
// @Tags MedicalRecords
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Router /medical-records/{id} [delete]
func (h *MedicalRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid record ID", nil)
		return
	}

	if err := h.recordUsecase.Delete(r.Context(), doctorID, id); err != nil {
		h.writeRecordError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted", nil)
}

func (h *MedicalRecordHandler) writeRecordError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrRecordNotFound):
		response.NotFound(w, "Medical record not found")
	case errors.Is(err, usecase.ErrNotParticipant):
		response.Forbidden(w, "Not authorized for this record")
	default:
		response.InternalServerError(w, "Failed to process medical record")
	}
}
