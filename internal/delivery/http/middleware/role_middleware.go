package middleware

import (
	"net/http"

	"github.com/Derekanton-cloud/Doctor-Patient-Platform/internal/domain/entity"
	"github.com/Derekanton-cloud/Doctor-Patient-Platform/pkg/response"
)

// RoleMiddleware restricts a route to one or more roles. It must run after
// AuthMiddleware so the role claim is already in the context.
type RoleMiddleware struct{}

func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

func (m *RoleMiddleware) RequireRole(roles ...entity.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}
			for _, allowed := range roles {
				if role == string(allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

func (m *RoleMiddleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.RequireRole(entity.RoleAdmin)
}

func (m *RoleMiddleware) RequireDoctor() func(http.Handler) http.Handler {
	return m.RequireRole(entity.RoleDoctor)
}

func (m *RoleMiddleware) RequirePatient() func(http.Handler) http.Handler {
	return m.RequireRole(entity.RolePatient)
}
