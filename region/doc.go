// Package region narrows transit payloads to a geographic corridor before
// they reach a restricted client.
//
// Every entry point takes and returns raw JSON bytes. When the input cannot
// be decoded, or when filtering a station or train list would remove every
// element, the original bytes are returned unchanged. This fail-open policy
// is deliberate compatibility behavior; see DESIGN.md before relying on it
// as a hard security boundary.
package region
