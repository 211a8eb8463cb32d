package http

import (
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/validation"
)

// Payload schemas for every body-carrying endpoint. Built once and attached
// to the route table; never mutated afterwards.
var (
	createUserSchema = validation.NewSchema(
		validation.String("name"),
		validation.String("email").Email(),
		validation.String("password").MinLen(8),
		validation.String("type").OneOf(string(domain.RoleBuyer), string(domain.RoleSeller)),
	)

	loginSchema = validation.NewSchema(
		validation.String("email"),
		validation.String("password"),
	)

	updateUserSchema = validation.NewSchema(
		validation.String("name").Optional(),
		validation.String("password").MinLen(8).Optional(),
	)

	createAdminSchema = validation.NewSchema(
		validation.String("name"),
		validation.String("email").Email(),
		validation.String("password").MinLen(8),
	)

	categorySchema = validation.NewSchema(
		validation.String("name"),
		validation.String("description"),
	)

	createItemSchema = validation.NewSchema(
		validation.String("title"),
		validation.String("description"),
		validation.Number("authorId").Positive().Coerce(),
		validation.Number("categoryId").Positive().Coerce(),
	)

	updateItemSchema = validation.NewSchema(
		validation.String("title").Optional(),
		validation.String("description").Optional(),
	)
)
