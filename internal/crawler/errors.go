package crawler

import "errors"

var (
	// ErrTransport is returned when a catalog API request fails at the network
	// or HTTP level (connection error or non-success status).
	ErrTransport = errors.New("catalog API request failed")

	// ErrSchema is returned when a response body does not match the expected
	// catalog API envelope.
	ErrSchema = errors.New("unexpected catalog API response shape")

	// ErrIdentifierMismatch is returned when Merge is handed a list entry and a
	// detail entry with different product IDs.
	ErrIdentifierMismatch = errors.New("list and detail identifiers do not match")
)
