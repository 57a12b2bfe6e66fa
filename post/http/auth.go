package http

import (
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/user/auth"
)

const loginPath = "/auth/login/"

func loginRedirect(next string) string {
	return loginPath + "?next=" + (&url.URL{Path: next}).EscapedPath()
}

// requireUser writes 401 with a Location pointing at the login page when
// the request is anonymous.
func requireUser(w http.ResponseWriter, r *http.Request) (*auth.JwtClaims, uuid.UUID, bool) {
	log := logger.FromContext(r.Context())

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		w.Header().Set("Location", loginRedirect(r.URL.Path))
		httpjson.HandleError(log, w, auth.NewErrNotAuthenticated())
		return nil, uuid.Nil, false
	}

	id, err := claims.UserUUID()
	if err != nil {
		w.Header().Set("Location", loginRedirect(r.URL.Path))
		httpjson.HandleError(log, w, auth.NewErrNotAuthenticated().SetDebug(err))
		return nil, uuid.Nil, false
	}

	return claims, id, true
}
