package services

import (
	"context"

	"pantry-backend/internal/models"
)

// NameValidator is satisfied by *validation.NameValidator.
type NameValidator interface {
	Validate(ctx context.Context, raw string, kind models.EntityType, existingID uint) (string, error)
}
