package services

import "fmt"

// authorizeOwner enforces that only the owner may modify a resource. Callers
// must already have rejected an empty actorID and a missing resource, in that
// order, so the three failures surface as Unauthenticated, NotFound, Forbidden.
func authorizeOwner(op, actorID, ownerID string) error {
	if actorID != ownerID {
		return newError(op, ErrForbidden, fmt.Errorf("user %s does not own this resource", actorID))
	}
	return nil
}
