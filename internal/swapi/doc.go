// Package swapi provides a read-only HTTP client for the Star Wars API.
//
// # Overview
//
// The client exposes typed accessors for the people collection and for single
// film, planet and species resources addressed by absolute URL. Every request
// carries the caller's context, an Accept: application/json header and a
// holonet User-Agent, and is bounded by a fixed timeout (10 seconds by default).
//
//	client, err := swapi.NewClient("https://swapi.dev/api")
//	if err != nil {
//		return err
//	}
//	page, err := client.FetchCharacters(ctx, 2)
//
// # Endpoints
//
//   - GET /people/?page=N: one page of characters
//   - GET /people/?search=Q: characters whose name contains Q (server side)
//   - GET /people/{id}/: a single character
//   - absolute film, planet and species URLs taken from a character
//
// # Link Normalization
//
// The service embeds http:// links in its payloads but only serves https://
// reliably. Secure rewrites the scheme before any embedded URL is fetched.
// ID extracts the trailing path segment that identifies a resource.
//
// # Errors
//
// Failures come back as one of three shapes, distinguishable with errors.As:
//
//   - *NetworkError: transport failure or timeout (see NetworkError.Timeout)
//   - *HTTPError: the service answered with a non-2xx status
//   - a "decode response" error wrapping the JSON failure
//
// Kind folds an error into a short label for logging.
//
// # Pacing
//
// Requests pass through a token-bucket limiter (golang.org/x/time/rate) so the
// detail fan-out does not burst the public service. Each request is logged at
// debug level with a request id.
//
// # Thread Safety
//
// The Client is safe for concurrent use.
package swapi
