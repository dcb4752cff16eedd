package middleware

import (
	"net/http"

	"github.com/slabtrack/slabtrack-backend/api/responses"
	"github.com/slabtrack/slabtrack-backend/pkg/enums"
	pkgerrors "github.com/slabtrack/slabtrack-backend/pkg/errors"
	"github.com/slabtrack/slabtrack-backend/pkg/logger"
)

// RequireWriteRole gates mutating endpoints to roles allowed to write.
func RequireWriteRole(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.StaffRole(RoleFromContext(r.Context()))
			if !role.CanWrite() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "write access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
