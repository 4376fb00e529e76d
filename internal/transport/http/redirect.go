package http

import (
	"net/http"
	"net/url"
	"strings"
)

// RequireSession redirects requests under a protected prefix that carry no
// auth cookie to loginPath?redirect=<original path>.
func RequireSession(prefixes []string, loginPath, cookieName string, next http.Handler) http.Handler {
	if len(prefixes) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isProtected(r.URL.Path, prefixes) {
			next.ServeHTTP(w, r)
			return
		}
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			next.ServeHTTP(w, r)
			return
		}
		target := loginPath + "?" + url.Values{"redirect": {r.URL.Path}}.Encode()
		http.Redirect(w, r, target, http.StatusFound)
	})
}

func isProtected(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimRight(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
