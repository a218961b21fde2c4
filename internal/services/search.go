package services

import (
	"context"
	"fmt"
	"strings"

	"gatherly/internal/domain"
)

type searchService struct {
	guestRepo domain.GuestRepository
	eventRepo domain.EventRepository
}

// NewSearchService creates the read-only host search projection.
func NewSearchService(guestRepo domain.GuestRepository, eventRepo domain.EventRepository) domain.SearchService {
	return &searchService{guestRepo: guestRepo, eventRepo: eventRepo}
}

func (s *searchService) SearchHosts(ctx context.Context, query string) ([]*domain.HostSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.HostSearchResult{}, nil
	}

	// One token matches either name field; with more, the first token filters
	// first names and the remainder filters last names ("Emma Otteson" must
	// not match Emma Lee).
	tokens := strings.Fields(query)
	var guests []*domain.Guest
	var err error
	if len(tokens) == 1 {
		guests, err = s.guestRepo.SearchByName(ctx, tokens[0], "", true)
	} else {
		guests, err = s.guestRepo.SearchByName(ctx, tokens[0], strings.Join(tokens[1:], " "), false)
	}
	if err != nil {
		return nil, fmt.Errorf("search guests: %w", err)
	}

	// Fetch events per matching guest (N+1). This keeps the implementation
	// simple; we can optimize later if needed.
	var results []*domain.HostSearchResult
	for _, guest := range guests {
		events, err := s.eventRepo.ListByHostID(ctx, guest.ID)
		if err != nil {
			return nil, fmt.Errorf("list events for host: %w", err)
		}
		for _, event := range events {
			results = append(results, &domain.HostSearchResult{
				Guest: guest,
				Event: event,
			})
		}
	}
	if results == nil {
		results = []*domain.HostSearchResult{}
	}
	return results, nil
}
