// Package access enforces ownership and visibility rules before any read or
// write reaches blob storage.
package access

import (
	"github.com/MyagmarsurenMike/e-proof/internal/core/domain"
	"github.com/google/uuid"
)

// Intent is the kind of operation being authorized.
type Intent string

const (
	IntentRead   Intent = "read"
	IntentWrite  Intent = "write"
	IntentDelete Intent = "delete"
)

// Actor is either an authenticated session user or the anonymous bearer of a
// signed token scoped to one file.
type Actor struct {
	UserID      uuid.UUID
	tokenFileID *uuid.UUID
}

// SessionActor builds an actor from an authenticated user id.
func SessionActor(userID uuid.UUID) Actor {
	return Actor{UserID: userID}
}

// TokenActor builds an anonymous actor from a validated token's file id.
func TokenActor(fileID uuid.UUID) Actor {
	return Actor{tokenFileID: &fileID}
}

// Anonymous reports whether the actor carries no session identity.
func (a Actor) Anonymous() bool {
	return a.tokenFileID != nil
}

// Authorize applies the access rules in order: soft-deleted files are gone
// for everyone; token bearers may only read the single file their token
// names; session users must be one of the file's owners.
func Authorize(actor Actor, f *domain.File, intent Intent) error {
	if !f.Live() {
		return domain.ErrGone
	}

	if actor.Anonymous() {
		// Possession of a valid token grants read access to exactly that
		// file; tokens never authorize writes or deletes.
		if intent != IntentRead || *actor.tokenFileID != f.ID {
			return domain.ErrForbidden
		}
		return nil
	}

	if !f.Owners.Contains(actor.UserID) {
		return domain.ErrForbidden
	}
	return nil
}
