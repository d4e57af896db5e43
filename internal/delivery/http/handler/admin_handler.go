package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/delivery/http/middleware"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/usecase"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListPendingDoctors lists verified doctors awaiting approval
// @Summary List pending doctors
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/doctors/pending [get]
func (h *AdminHandler) ListPendingDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.adminUsecase.ListPendingDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list pending doctors")
		return
	}
	response.Success(w, http.StatusOK, "Pending doctors retrieved", doctors)
}

// ApproveDoctor approves a pending doctor
// @Summary Approve a doctor
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/approve [post]
func (h *AdminHandler) ApproveDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.adminUsecase.ApproveDoctor(r.Context(), adminID, doctorID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrDoctorNotPending):
			response.Error(w, http.StatusBadRequest, "Doctor is not awaiting approval", nil)
		default:
			response.InternalServerError(w, "Failed to approve doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor approved", doctor)
}

// RejectDoctor rejects and removes a pending doctor
// @Summary Reject a doctor
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/doctors/{id}/reject [post]
func (h *AdminHandler) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	if err := h.adminUsecase.RejectDoctor(r.Context(), adminID, doctorID, req.Reason); err != nil {
		switch {
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrDoctorNotPending):
			response.Error(w, http.StatusBadRequest, "Doctor is not awaiting approval", nil)
		default:
			response.InternalServerError(w, "Failed to reject doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor rejected", nil)
}

// DeleteUser removes a user account
// @Summary Delete a user
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	userID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	if err := h.adminUsecase.DeleteUser(r.Context(), adminID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, usecase.ErrCannotDeleteAdmin):
			response.Forbidden(w, "Admin accounts cannot be deleted")
		default:
			response.InternalServerError(w, "Failed to delete user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User deleted", nil)
}
