package middleware

import (
	"crypto/subtle"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/errs"
	"github.com/Emma-Lee-123/Mylist-Functions/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// FunctionKeyLookup names where the shared key may be supplied.
const FunctionKeyLookup = "header:x-functions-key,query:code"

type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireFunctionKey rejects requests that do not carry auth.function_key.
// With no key configured every request passes.
func (auth *AuthMiddleware) RequireFunctionKey() echo.MiddlewareFunc {
	key := []byte(auth.server.Config.Auth.FunctionKey)

	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(echo.Context) bool {
			return len(key) == 0
		},
		KeyLookup: FunctionKeyLookup,
		Validator: func(candidate string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(candidate), key) == 1, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			GetLogger(c).Warn().Err(err).Msg("function key missing or invalid")
			return errs.NewUnauthorizedError("Unauthorized", false)
		},
	})
}
