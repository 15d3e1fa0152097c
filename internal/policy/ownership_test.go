package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tahmid42/playtube/backend/internal/models"
)

type ownedThing uint

func (o ownedThing) OwnedBy() uint { return uint(o) }

func TestAuthorize(t *testing.T) {
	resource := ownedThing(7)

	tests := []struct {
		name    string
		actor   Actor
		allowed bool
	}{
		{"owner", Actor{ID: 7}, true},
		{"non-owner", Actor{ID: 8}, false},
		{"admin non-owner", Actor{ID: 8, IsAdmin: true}, true},
		{"admin owner", Actor{ID: 7, IsAdmin: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.actor, resource)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, models.ErrForbidden)
			}
		})
	}
}
