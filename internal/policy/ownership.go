// Package policy holds the single mutation-authorization rule used across
// videos, comments, tweets and playlists: the actor must be the recorded
// owner, or carry the admin role.
package policy

import "github.com/tahmid42/playtube/backend/internal/models"

// Actor is the resolved request identity.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// Resource is anything with a recorded owner.
type Resource interface {
	OwnedBy() uint
}

// Authorize returns nil when the actor may mutate the resource, and
// models.ErrForbidden otherwise. Callers must have confirmed the resource
// exists first, so that a missing target surfaces as 404 and an
// unauthorized mutation as 403.
func Authorize(actor Actor, r Resource) error {
	if actor.ID == r.OwnedBy() || actor.IsAdmin {
		return nil
	}
	return models.ErrForbidden
}
