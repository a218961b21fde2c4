package domain

import "context"

// HostSearchResult is one flattened (guest, event) row returned by the host
// search: a matching guest paired with one event they host.
// swagger:model HostSearchResult
type HostSearchResult struct {
	Guest *Guest `json:"guest"`
	Event *Event `json:"event"`
}

// SearchService is a read-only projection over guests and the events they
// host. It never mutates anything.
type SearchService interface {
	// SearchHosts matches name fragments case-insensitively. A single-token
	// query matches first or last name; with multiple tokens the first token
	// filters first names and the remainder filters last names. Guests
	// hosting no events are omitted.
	SearchHosts(ctx context.Context, query string) ([]*HostSearchResult, error)
}
