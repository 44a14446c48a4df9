package auth

import (
	"github.com/google/uuid"

	"github.com/lucasmn/fueltrack/internal/models"
)

// Session is the authenticated caller of a request. It is resolved once
// by the middleware and passed explicitly into every service call; no
// operation reads ambient global state.
type Session struct {
	UserID  uuid.UUID
	Profile *models.Profile
}

// IsPro reports the subscription tier of the session's account.
func (s *Session) IsPro() bool {
	return s.Profile != nil && s.Profile.IsPro
}
