package rest

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/Shikharishere/api/auth"
	"github.com/Shikharishere/api/limiter"
)

// errorBody is the wire shape of a failed call: a stable text code, a
// human message, and optional structured data. Internal detail never
// leaks; unknown errors collapse into a generic internal failure.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

type errorEnvelope struct {
	Status string    `json:"status"`
	Error  errorBody `json:"error"`
}

type successEnvelope struct {
	Status   string `json:"status"`
	Response any    `json:"response"`
}

// Success renders a success envelope.
func Success(c *fiber.Ctx, response any) error {
	return c.Status(fiber.StatusOK).JSON(successEnvelope{
		Status:   "ok",
		Response: response,
	})
}

// Error renders any pipeline failure as an error envelope. Rate-limit
// failures additionally set the Retry-After header.
func Error(c *fiber.Ctx, err error) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		rich = errors.Wrap(err, errors.CategoryInternal, "internal server error").
			WithCode(errors.CodeInternal)
	}

	body := errorBody{
		Code:    rich.TextCode,
		Message: rich.Message,
		Data:    rich.Metadata,
	}
	if body.Code == "" {
		body.Code = "internal_server_error"
		body.Message = "internal server error"
		body.Data = nil
	}

	if rich.TextCode == limiter.TextCodeTooManyRequests {
		if retryAfter, ok := rich.Metadata["retry-after"].(int); ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		}
	}

	return c.Status(statusFor(rich)).JSON(errorEnvelope{
		Status: "error",
		Error:  body,
	})
}

func statusFor(rich *errors.Error) int {
	if rich.Code > 0 {
		return rich.Code
	}

	switch rich.Category {
	case errors.CategoryAuth:
		return fiber.StatusUnauthorized
	case errors.CategoryAuthz:
		return fiber.StatusForbidden
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	case errors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// RequireAuth runs the resolution pipeline before the route handler and
// stores the authenticated context in both locals and the request context.
func RequireAuth(resolver *auth.Resolver, opts auth.Options) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, err := resolver.ResolveRequest(c.UserContext(), FromFiber(c), opts)
		if err != nil {
			return Error(c, err)
		}
		c.Locals(AuthContextKey, authCtx)
		c.SetUserContext(auth.WithContext(c.UserContext(), authCtx))
		return c.Next()
	}
}

// AuthContextKey is the fiber locals key RequireAuth stores the resolved
// context under.
const AuthContextKey = "auth_context"

// AuthFromLocals retrieves the context stored by RequireAuth.
func AuthFromLocals(c *fiber.Ctx) (*auth.AuthContext, bool) {
	authCtx, ok := c.Locals(AuthContextKey).(*auth.AuthContext)
	return authCtx, ok
}
