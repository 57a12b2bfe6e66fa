package http

import (
	"net/http"

	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/user/auth"
)

// Logout handles user logout by clearing the auth_token cookie
func (httpserver *UserHttpHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := http.Cookie{
		Name:     auth.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	}
	http.SetCookie(w, &cookie)

	httpjson.WriteSuccessJson(w, map[string]string{"message": "Вы вышли из своей учётной записи"})
}
