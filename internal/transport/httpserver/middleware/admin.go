package middleware

import (
	"encoding/json"
	"net/http"

	"invite-app-go/pkg/logger"
)

const AdminCodeHeader = "X-Admin-Code"

type AdminVerifier interface {
	VerifyAdminCode(input string) bool
}

type AdminGate struct {
	verifier AdminVerifier
	log      logger.Logger
}

func NewAdminGate(verifier AdminVerifier, log logger.Logger) *AdminGate {
	return &AdminGate{verifier: verifier, log: log}
}

// Middleware admits requests whose X-Admin-Code header is exactly the admin
// secret. There is no lockout; a wrong code can be retried immediately.
func (g *AdminGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.Header.Get(AdminCodeHeader)
		if code == "" || !g.verifier.VerifyAdminCode(code) {
			g.log.Debug("admin: rejected request", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid_admin_code", "invalid admin code")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
