package http

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Client-ID"
	corsMaxAge       = "600"
)

// CORS applies an origin allow-list. Listed origins are echoed back with
// credentials allowed; "*" admits any origin without credentials. A preflight
// from an admitted origin is answered with 204, advertising corsAllowMethods
// and corsAllowHeaders (Authorization for bearer tokens, X-Client-ID for
// anonymous favorites). A preflight from any other origin gets 403; plain
// requests from it pass through without CORS headers.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newOriginPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

		switch {
		case origin == "":
			next.ServeHTTP(w, r)
		case !policy.admits(origin):
			if preflight {
				writeError(w, http.StatusForbidden, codeForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		default:
			policy.decorate(w.Header(), origin)
			if preflight {
				h := w.Header()
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
				h.Set("Access-Control-Max-Age", corsMaxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		}
	})
}

type originPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newOriginPolicy(list []string) originPolicy {
	p := originPolicy{origins: make(map[string]struct{}, len(list))}
	for _, o := range list {
		switch o = strings.TrimSpace(o); o {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[o] = struct{}{}
		}
	}
	return p
}

func (p originPolicy) admits(origin string) bool {
	if p.any {
		return true
	}
	_, ok := p.origins[origin]
	return ok
}

func (p originPolicy) decorate(h http.Header, origin string) {
	if p.any {
		h.Set("Access-Control-Allow-Origin", "*")
		return
	}
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	h.Add("Vary", "Origin")
}
