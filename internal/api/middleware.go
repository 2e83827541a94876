package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"kadoshrent/internal/i18n"
	"kadoshrent/internal/metrics"
)

var localeExemptPrefixes = []string{"/api/", "/static/"}

var localeExemptPaths = map[string]bool{
	"/metrics":     true,
	"/healthz":     true,
	"/favicon.ico": true,
	"/robots.txt":  true,
}

// LocaleGuard redirects any page path that does not start with a supported
// locale to the same path under defaultLocale. The query string is kept.
func LocaleGuard(defaultLocale string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if localeExempt(path) || hasLocalePrefix(path) {
				next.ServeHTTP(w, r)
				return
			}

			target := "/" + defaultLocale
			if path != "/" {
				target += path
			}
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}

func localeExempt(path string) bool {
	if localeExemptPaths[path] {
		return true
	}
	for _, p := range localeExemptPrefixes {
		if strings.HasPrefix(path, p) || path == strings.TrimSuffix(p, "/") {
			return true
		}
	}
	return false
}

func hasLocalePrefix(path string) bool {
	segment := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	return i18n.IsSupported(segment)
}

// instrument records the duration of every matched route.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.RequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
