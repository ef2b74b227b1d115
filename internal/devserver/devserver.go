// Package devserver is a self-contained in-memory GarbageSocial backend
// for local development and integration tests. It serves the same REST
// surface the real backend exposes (health probe plus the waste, user,
// and rating collections) and can simulate outages via SetHealthy.
//
// Nothing is persisted; restarting the server loses all data.
package devserver

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/garbagesocial/gsclient/internal/logger"
	"github.com/garbagesocial/gsclient/models"
)

// Server holds the in-memory collections behind the REST surface.
type Server struct {
	logger *logger.Logger

	mu      sync.RWMutex
	healthy bool
	wastes  map[string]models.Waste
	users   map[string]models.User
	ratings map[string]models.Rating
}

// New returns a healthy Server with empty collections.
func New(log *logger.Logger) *Server {
	return &Server{
		logger:  log,
		healthy: true,
		wastes:  make(map[string]models.Waste),
		users:   make(map[string]models.User),
		ratings: make(map[string]models.Rating),
	}
}

// SetHealthy toggles outage simulation: while unhealthy every endpoint,
// the health probe included, answers 503.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	s.healthy = healthy
	s.mu.Unlock()
	s.logger.Info().Bool("healthy", healthy).Msg("dev server health toggled")
}

// Router builds the chi router serving the full REST surface.
func (s *Server) Router() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.requireHealthy)

	router.Get("/health", s.health)

	router.Route("/api", func(r chi.Router) {
		r.Get("/wastes", s.listWastes)
		r.Put("/wastes/{id}", s.putWaste)
		r.Delete("/wastes/{id}", s.deleteWaste)

		r.Get("/users", s.listUsers)
		r.Put("/users/{id}", s.putUser)
		r.Delete("/users/{id}", s.deleteUser)

		r.Get("/ratings", s.listRatings)
		r.Put("/ratings/{id}", s.putRating)
		r.Delete("/ratings/{id}", s.deleteRating)
	})

	return router
}

func (s *Server) requireHealthy(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		healthy := s.healthy
		s.mu.RUnlock()

		if !healthy {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ── Wastes ───────────────────────────────────────────────────────────────

func (s *Server) listWastes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ownerID, wasteType := q.Get("id"), q.Get("owner_id"), q.Get("type")

	s.mu.RLock()
	out := make([]models.Waste, 0, len(s.wastes))
	for _, waste := range s.wastes {
		if id != "" && waste.ID != id {
			continue
		}
		if ownerID != "" && waste.OwnerID != ownerID {
			continue
		}
		if wasteType != "" && string(waste.Type) != wasteType {
			continue
		}
		out = append(out, waste)
	}
	s.mu.RUnlock()

	writeJSON(w, out)
}

func (s *Server) putWaste(w http.ResponseWriter, r *http.Request) {
	var waste models.Waste
	if err := json.NewDecoder(r.Body).Decode(&waste); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	waste.ID = chi.URLParam(r, "id")
	if waste.ID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.wastes[waste.ID] = waste
	s.mu.Unlock()

	writeJSON(w, waste)
}

func (s *Server) deleteWaste(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, found := s.wastes[id]
	delete(s.wastes, id)
	s.mu.Unlock()

	if !found {
		http.Error(w, "no such waste", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Users ────────────────────────────────────────────────────────────────

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	s.mu.RLock()
	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		if id != "" && user.ID != id {
			continue
		}
		out = append(out, user)
	}
	s.mu.RUnlock()

	writeJSON(w, out)
}

func (s *Server) putUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user.ID = chi.URLParam(r, "id")
	if user.ID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()

	writeJSON(w, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, found := s.users[id]
	delete(s.users, id)
	s.mu.Unlock()

	if !found {
		http.Error(w, "no such user", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Ratings ──────────────────────────────────────────────────────────────

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	s.mu.RLock()
	out := make([]models.Rating, 0, len(s.ratings))
	for _, rating := range s.ratings {
		if id != "" && rating.ID != id {
			continue
		}
		out = append(out, rating)
	}
	s.mu.RUnlock()

	writeJSON(w, out)
}

func (s *Server) putRating(w http.ResponseWriter, r *http.Request) {
	var rating models.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rating.ID = chi.URLParam(r, "id")
	if rating.ID == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.ratings[rating.ID] = rating
	s.mu.Unlock()

	writeJSON(w, rating)
}

func (s *Server) deleteRating(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	_, found := s.ratings[id]
	delete(s.ratings, id)
	s.mu.Unlock()

	if !found {
		http.Error(w, "no such rating", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
