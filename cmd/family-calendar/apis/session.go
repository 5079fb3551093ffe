package apis

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"family-calendar-backend/cmd/family-calendar/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// sessionTTL is how long a successful PIN entry stays valid.
const sessionTTL = 30 * 24 * time.Hour

type SessionAPI struct {
	pin    string
	secret []byte
}

func NewSessionAPI(pin, secret string) *SessionAPI {

	return &SessionAPI{
		pin:    pin,
		secret: []byte(secret),
	}
}

func (a *SessionAPI) Setup(g *echo.Group) {
	g.POST("/session", a.createSession)
}

// SetupAuthorized registers the routes that only make sense behind the gate.
func (a *SessionAPI) SetupAuthorized(g *echo.Group) {
	g.GET("/session", a.checkSession)
}

// createSession exchanges the shared PIN for a bearer token expiring 30
// days out. A wrong PIN persists nothing.
func (a *SessionAPI) createSession(c echo.Context) error {

	var req model.SessionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(
			http.StatusBadRequest,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	if subtle.ConstantTimeCompare([]byte(req.Pin), []byte(a.pin)) != 1 {
		return c.JSON(
			http.StatusUnauthorized,
			model.BaseResponse{
				Message: "wrong pin",
			},
		)
	}

	expiresAt := time.Now().Add(sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return c.JSON(
			http.StatusInternalServerError,
			model.BaseResponse{
				Message: err.Error(),
			},
		)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data: model.SessionResponse{
				Token:     signed,
				ExpiresAt: expiresAt,
			},
		},
	)
}

// checkSession only ever runs behind AuthMiddleware, so reaching it means
// the session is valid.
func (a *SessionAPI) checkSession(c echo.Context) error {
	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "authorized",
		},
	)
}

// AuthMiddleware validates the bearer token on every request it wraps.
// The core only consumes the authorized/unauthorized signal; the claims
// carry nothing but the expiry.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(
					http.StatusUnauthorized,
					model.BaseResponse{
						Message: "missing bearer token",
					},
				)
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return c.JSON(
					http.StatusUnauthorized,
					model.BaseResponse{
						Message: "invalid or expired token",
					},
				)
			}

			return next(c)
		}
	}
}
