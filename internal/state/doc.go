// Package state holds holonet's client state: the favourites list and the
// recent-search history.
//
// # Overview
//
// A single Store is created at startup, loaded once from a storage.KV, and
// handed to the UI. Every mutation updates memory first and then writes the
// affected list back to the KV:
//
//	UI action ──→ store.AddFavorite(c) ──→ in-memory list (authoritative)
//	                                   └──→ kv.Set("sw-favorites", json)  best effort
//
// # Persistence
//
// Two keys are used, each holding a JSON array:
//
//   - sw-favorites: full character snapshots, in insertion order
//   - sw-search-history: query strings, most recent first, at most 10
//
// Loading never fails. A missing key starts empty; an unreadable or corrupt
// value is logged at warn level and also starts empty. Write failures are
// logged and dropped, and the in-memory state stays authoritative for the
// session.
//
// # Identity
//
// Favourites are keyed by the identifier extracted from the character URL
// (swapi.ID), not by the full URL string, so http/https variants and
// trailing-slash differences of the same character collapse to one entry.
//
// # Thread Safety
//
// Reads take a read lock and return copies. Mutations are serialised so the
// durable copy always reflects the latest in-memory state.
package state
