package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang-jwt/jwt/v5/request"
	"github.com/google/uuid"
	"github.com/yatube/backend/httpjson"
	"github.com/yatube/backend/srvcerror"
)

const AuthCookieName = "auth_token"

type JwtClaims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	UUID     string `json:"uuid,omitempty"`
	jwt.RegisteredClaims
}

type ClaimsKeyType string

var CtxJwtClaimsKey ClaimsKeyType = "jwtClaims"

const tokenLifetime = 24 * time.Hour

func GenerateJWT(username, email string, uuid uuid.UUID, jwtKey []byte) (string, error) {
	now := time.Now()

	claims := &JwtClaims{
		Username: username,
		Email:    email,
		UUID:     uuid.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ValidateJWT(tokenStr string, jwtKey []byte) (*JwtClaims, error) {
	claims := &JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("invalid token signature")
		}
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// ClaimsFromContext returns the claims put into the context by the
// middleware, or nil for anonymous requests.
func ClaimsFromContext(ctx context.Context) *JwtClaims {
	claims, ok := ctx.Value(CtxJwtClaimsKey).(*JwtClaims)
	if !ok {
		return nil
	}
	return claims
}

// UserUUID parses the uuid claim.
func (c *JwtClaims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UUID)
}

type cookieExtractor string

func (c cookieExtractor) ExtractToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(string(c))
	if err != nil || cookie.Value == "" {
		return "", request.ErrNoTokenInRequest
	}
	return cookie.Value, nil
}

var tokenExtractor = request.MultiExtractor{
	request.BearerExtractor{},
	cookieExtractor(AuthCookieName),
}

const ErrCodeInvalidToken = "invalid_token"

func newErrInvalidToken(cause error) *srvcerror.Error {
	return srvcerror.New(
		ErrCodeInvalidToken,
		"недействительный токен авторизации",
	).SetHttpStatusCode(http.StatusUnauthorized).SetDebug(cause)
}

const ErrCodeNotAuthenticated = "not_authenticated"

// ErrNotAuthenticated matches any not_authenticated error with errors.Is.
var ErrNotAuthenticated = NewErrNotAuthenticated()

func NewErrNotAuthenticated() *srvcerror.Error {
	return srvcerror.New(
		ErrCodeNotAuthenticated,
		"необходимо войти в систему",
	).SetHttpStatusCode(http.StatusUnauthorized)
}

// GetJwtAuthMiddleware validates JWT token and adds the claims to the request context
func GetJwtAuthMiddleware(jwtKey []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenExtractor.ExtractToken(r)
			if err != nil {
				if errors.Is(err, request.ErrNoTokenInRequest) {
					ctx := context.WithValue(r.Context(), CtxJwtClaimsKey, (*JwtClaims)(nil))
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				httpjson.HandleError(slog.Default(), w, newErrInvalidToken(err))
				return
			}

			claims, err := ValidateJWT(token, jwtKey)
			if err != nil {
				httpjson.HandleError(slog.Default(), w, newErrInvalidToken(err))
				return
			}

			ctx := context.WithValue(r.Context(), CtxJwtClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
