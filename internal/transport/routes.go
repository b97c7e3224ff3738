package transport

import "net/http"

// Guards are the route middlewares handlers attach to their groups.
type Guards struct {
	Auth         func(http.Handler) http.Handler
	OptionalAuth func(http.Handler) http.Handler
	Admin        func(http.Handler) http.Handler
	// SubmitLimit throttles pet submissions, AuthLimit the credential endpoints.
	SubmitLimit func(http.Handler) http.Handler
	AuthLimit   func(http.Handler) http.Handler
}

func passthrough(next http.Handler) http.Handler { return next }

// withDefaults fills unset guards with no-ops.
func (g Guards) withDefaults() Guards {
	for _, mw := range []*func(http.Handler) http.Handler{&g.Auth, &g.OptionalAuth, &g.Admin, &g.SubmitLimit, &g.AuthLimit} {
		if *mw == nil {
			*mw = passthrough
		}
	}
	return g
}
