package state

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/five82/holonet/internal/logger"
	"github.com/five82/holonet/internal/storage"
	"github.com/five82/holonet/internal/swapi"
)

const (
	// FavoritesKey holds the JSON array of favourite characters.
	FavoritesKey = "sw-favorites"
	// HistoryKey holds the JSON array of recent queries.
	HistoryKey = "sw-search-history"
	// HistoryLimit caps the number of remembered queries.
	HistoryLimit = 10

	ioTimeout = 3 * time.Second
)

// Store coordinates favourites and search history.
type Store struct {
	kv  storage.KV
	log logger.Logger

	// writeMu serialises mutate-then-persist so writes land in order.
	writeMu sync.Mutex

	mu        sync.RWMutex
	favorites []swapi.Character
	history   []string
}

// Open loads both lists from kv. It never fails; see the package docs.
func Open(ctx context.Context, kv storage.KV, log logger.Logger) *Store {
	if kv == nil {
		kv = storage.NewMemory()
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{kv: kv, log: log.With(logger.String("component", "state"))}

	var favorites []swapi.Character
	if s.load(ctx, FavoritesKey, &favorites) {
		s.favorites = dedupeFavorites(favorites)
	}
	var history []string
	if s.load(ctx, HistoryKey, &history) {
		s.history = normalizeHistory(history)
	}
	return s
}

func (s *Store) load(ctx context.Context, key string, dest any) bool {
	ctx, cancel := context.WithTimeout(ctx, ioTimeout)
	defer cancel()

	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false
		}
		s.log.Warn("load state failed", logger.String("key", key), logger.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("stored state is corrupt", logger.String("key", key), logger.Error(err))
		return false
	}
	return true
}

func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encode state failed", logger.String("key", key), logger.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, key, data); err != nil {
		s.log.Warn("persist state failed", logger.String("key", key), logger.Error(err))
	}
}

// IsFavorite reports whether a character with the same identifier as url
// is stored.
func (s *Store) IsFavorite(url string) bool {
	id := swapi.ID(url)
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return indexOf(s.favorites, id) >= 0
}

// AddFavorite appends c unless a favourite with its identifier exists.
func (s *Store) AddFavorite(c swapi.Character) {
	s.mutateFavorites(func(list []swapi.Character) ([]swapi.Character, bool) {
		id := c.ID()
		if id == "" || indexOf(list, id) >= 0 {
			return list, false
		}
		return append(list, c), true
	})
}

// RemoveFavorite drops the favourite matching url's identifier, if any.
func (s *Store) RemoveFavorite(url string) {
	id := swapi.ID(url)
	s.mutateFavorites(func(list []swapi.Character) ([]swapi.Character, bool) {
		i := indexOf(list, id)
		if id == "" || i < 0 {
			return list, false
		}
		next := make([]swapi.Character, 0, len(list)-1)
		next = append(next, list[:i]...)
		return append(next, list[i+1:]...), true
	})
}

// ToggleFavorite adds or removes c and reports whether it is now a favourite.
func (s *Store) ToggleFavorite(c swapi.Character) bool {
	if s.IsFavorite(c.URL) {
		s.RemoveFavorite(c.URL)
		return false
	}
	s.AddFavorite(c)
	return s.IsFavorite(c.URL)
}

// Favorites returns a copy of the favourites in insertion order.
func (s *Store) Favorites() []swapi.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFavorites(s.favorites)
}

func (s *Store) mutateFavorites(fn func([]swapi.Character) ([]swapi.Character, bool)) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next, changed := fn(s.favorites)
	if changed {
		s.favorites = next
	}
	snapshot := cloneFavorites(s.favorites)
	s.mu.Unlock()

	if changed {
		s.persist(FavoritesKey, snapshot)
	}
}

// AddToSearchHistory records query as the most recent search. Blank queries
// are ignored; an existing identical entry moves to the front.
func (s *Store) AddToSearchHistory(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if len(s.history) > 0 && s.history[0] == query {
		s.mu.Unlock()
		return
	}
	next := make([]string, 0, HistoryLimit)
	next = append(next, query)
	for _, h := range s.history {
		if h != query && len(next) < HistoryLimit {
			next = append(next, h)
		}
	}
	s.history = next
	snapshot := append([]string{}, next...)
	s.mu.Unlock()

	s.persist(HistoryKey, snapshot)
}

// SearchHistory returns recent queries, most recent first.
func (s *Store) SearchHistory() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.history...)
}

// HistoryMatching returns history entries containing query
// (case-insensitive), excluding query itself. An empty query matches all.
func (s *Store) HistoryMatching(query string) []string {
	needle := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []string
	for _, h := range s.history {
		if h == query {
			continue
		}
		if strings.Contains(strings.ToLower(h), needle) {
			out = append(out, h)
		}
	}
	return out
}

func indexOf(list []swapi.Character, id string) int {
	for i, c := range list {
		if c.ID() == id {
			return i
		}
	}
	return -1
}

func cloneFavorites(list []swapi.Character) []swapi.Character {
	if len(list) == 0 {
		return nil
	}
	dup := make([]swapi.Character, len(list))
	copy(dup, list)
	return dup
}

func dedupeFavorites(list []swapi.Character) []swapi.Character {
	out := make([]swapi.Character, 0, len(list))
	for _, c := range list {
		if id := c.ID(); id != "" && indexOf(out, id) < 0 {
			out = append(out, c)
		}
	}
	return out
}

func normalizeHistory(list []string) []string {
	out := make([]string, 0, HistoryLimit)
	seen := make(map[string]bool, len(list))
	for _, h := range list {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] || len(out) == HistoryLimit {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
