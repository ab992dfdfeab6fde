// Package acl is the anti-corruption layer between the dedication wall and
// the services it talks to over HTTP.
//
// Each adapter keeps the downstream's wire DTOs unexported and hands out only
// domain types:
//
//   - [OEmbedClient] reads song metadata from Spotify's oEmbed endpoint and
//     implements ports.SongSource.
//   - [DedicationClient] stores dedications through another wall's REST API
//     and implements ports.DedicationStore.
//   - [BaserowClient] stores dedications as rows of a Baserow table and
//     implements ports.DedicationStore.
//
// Failures are translated with [MapHTTPError]:
//
//   - 404 → [domain.ErrNotFound]
//   - 400/422 → [domain.ErrValidation], with per-field details when present
//   - 401/403, 429, 5xx, transport errors and an open circuit → [domain.ErrUnavailable]
package acl
