package auth

// Owned is any resource that records the user who created it.
type Owned interface {
	OwnerID() string
}

// IsOwner reports whether actorID owns the resource. It is the single
// authorization predicate for every owner-gated route (blog posts, exchange
// posts, comments); an empty actor id never matches.
func IsOwner(resource Owned, actorID string) bool {
	return actorID != "" && resource.OwnerID() == actorID
}
