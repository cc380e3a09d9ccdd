package services

// ShouldNotify reports whether an interaction by actorID on something owned by
// recipientID produces a notification. Users are never notified of their own
// actions.
func ShouldNotify(actorID, recipientID string) bool {
	return actorID != recipientID
}
