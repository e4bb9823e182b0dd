package events

import "context"

// Actor identifies who triggered the event. Public visitors have no username.
type Actor struct {
	Kind     string `json:"kind"`
	Username string `json:"username,omitempty"`
}

// Actor kinds.
const (
	ActorPublic = "public"
	ActorAdmin  = "admin"
)

// PublicActor is the actor for anonymous intake.
func PublicActor() Actor {
	return Actor{Kind: ActorPublic}
}

// AdminActor is the actor for catalog management.
func AdminActor(username string) Actor {
	return Actor{Kind: ActorAdmin, Username: username}
}

type actorKey struct{}

// ContextWithActor attaches the acting identity to ctx.
func ContextWithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the acting identity, defaulting to a public visitor.
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return PublicActor()
}
