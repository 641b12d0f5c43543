// Package store persists wizard sessions so an operator's half-built form
// survives process restarts and failed submissions can be retried.
package store

import (
	"context"
	"errors"

	"github.com/ticketlane/eventwizard/internal/wizard"
)

var ErrNotFound = errors.New("wizard session not found")

type Sessions interface {
	Create(ctx context.Context, s *wizard.Session) error
	Get(ctx context.Context, id string) (*wizard.Session, error)
	Save(ctx context.Context, s *wizard.Session) error
	Delete(ctx context.Context, id string) error
}
