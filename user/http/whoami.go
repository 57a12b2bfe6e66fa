package http

import (
	"net/http"

	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/logger"
	"github.com/yatube/backend/user/auth"
)

func (h *UserHttpHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		httpjson.HandleError(log, w, auth.NewErrNotAuthenticated())
		return
	}

	id, err := claims.UserUUID()
	if err != nil {
		httpjson.HandleError(log, w, auth.NewErrNotAuthenticated().SetDebug(err))
		return
	}

	user, err := h.userSrvc.GetUserByUUID(r.Context(), id)
	if err != nil {
		httpjson.HandleError(log, w, err)
		return
	}

	httpjson.WriteSuccessJson(w, mapUser(user))
}
