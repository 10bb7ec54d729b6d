package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/utils"
)

// AllowOnlyCIDRS restricts admin endpoints to the given IPs/CIDRs. An empty
// list disables the check. trustProxy resolves the client from X-Forwarded-For
// (e.g. behind cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		return func(next http.Handler) http.Handler { return next }
	}

	log.Debugf("AllowOnlyCIDRS: %d rules, trustProxy=%v", len(allowed), trustProxy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				guardRejected.WithLabelValues("cidr").Inc()
				log.Debug("admin request rejected",
					logger.String("guard", "cidr"),
					logger.String("client_ip", ip),
					logger.String("path", r.URL.Path))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
