package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/yatube/backend/user"
)

type UserHttpHandler struct {
	userSrvc *user.UserSrvc
	JwtKey   []byte
}

func NewUserHttpHandler(userSrvc *user.UserSrvc, jwtKey []byte) *UserHttpHandler {
	return &UserHttpHandler{
		userSrvc: userSrvc,
		JwtKey:   jwtKey,
	}
}

// RegisterRoutes expects the jwt middleware to already be installed on r.
func (h *UserHttpHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/whoami", h.WhoAmI)
}
