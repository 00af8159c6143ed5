package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/tfgate/guarantees/internal/core"
)

type contextKey string

const actorKey contextKey = "actor"

// withActor resolves the acting principal from the X-Actor-ID header
// and stores it in the request context. Requests without a resolvable
// actor never reach a handler.
func (s *Server) withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Actor-ID")
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "missing X-Actor-ID header")
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid X-Actor-ID header")
			return
		}

		actor, err := s.service.ActorByID(r.Context(), id)
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown actor")
			return
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), actorKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// actorFrom returns the actor placed in the context by withActor.
// Handlers behind the middleware can rely on it being present.
func actorFrom(r *http.Request) *core.Actor {
	a, _ := r.Context().Value(actorKey).(*core.Actor)
	return a
}
