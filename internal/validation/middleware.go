package validation

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

const payloadKey = "validated_payload"

// Middleware returns a handler that checks the request body against the
// schema and stores the normalized payload for the route handler. The router
// attaches it after the access guard, so a request that fails authentication
// or authorization never surfaces a validation error.
func (s *Schema) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := map[string]any{}
		if body := c.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return apperrors.NewValidationError("invalid JSON payload", nil)
			}
		}

		payload, err := s.Validate(raw)
		if err != nil {
			var verr *Error
			if errors.As(err, &verr) {
				return apperrors.NewValidationError("payload validation failed", verr.Details())
			}
			return err
		}

		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// PayloadFromContext retrieves the normalized payload stored by Middleware.
func PayloadFromContext(c *fiber.Ctx) Payload {
	payload, _ := c.Locals(payloadKey).(Payload)
	return payload
}
