package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gatherly/internal/domain"
)

// fakeGuestRepo is an in-memory GuestRepository for tests.
type fakeGuestRepo struct {
	byID       map[string]*domain.Guest
	byIdentity map[string]*domain.Guest
	nextID     int
	createErr  error
	searchErr  error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{
		byID:       make(map[string]*domain.Guest),
		byIdentity: make(map[string]*domain.Guest),
		nextID:     1,
	}
}

func (f *fakeGuestRepo) add(g *domain.Guest) *domain.Guest {
	if g.ID == "" {
		g.ID = fmt.Sprintf("guest-%d", f.nextID)
		f.nextID++
	}
	f.byID[g.ID] = g
	if g.IdentityID != "" {
		f.byIdentity[g.IdentityID] = g
	}
	return g
}

func (f *fakeGuestRepo) Create(ctx context.Context, g *domain.Guest) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byIdentity[g.IdentityID]; ok {
		return domain.ErrDuplicateProfile
	}
	f.add(g)
	return nil
}

func (f *fakeGuestRepo) GetByIdentityID(ctx context.Context, identityID string) (*domain.Guest, error) {
	if g, ok := f.byIdentity[identityID]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) GetByID(ctx context.Context, id string) (*domain.Guest, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) SearchByName(ctx context.Context, firstName, lastName string, matchEither bool) ([]*domain.Guest, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	contains := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	var out []*domain.Guest
	for _, g := range f.byID {
		if matchEither {
			if contains(g.FirstName, firstName) || contains(g.LastName, firstName) {
				out = append(out, g)
			}
		} else if contains(g.FirstName, firstName) && contains(g.LastName, lastName) {
			out = append(out, g)
		}
	}
	return out, nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID    map[string]*domain.Event
	nextID  int
	listErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("event-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ListByHostID(ctx context.Context, hostID string) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if e.HostID == hostID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListExcludingHost(ctx context.Context, hostID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.byID {
		if e.HostID != hostID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) FirstByHostID(ctx context.Context, hostID string) (*domain.Event, error) {
	var first *domain.Event
	for _, e := range f.byID {
		if e.HostID != hostID {
			continue
		}
		if first == nil || e.EventDate.Before(first.EventDate) ||
			(e.EventDate.Equal(first.EventDate) && e.ID < first.ID) {
			first = e
		}
	}
	if first == nil {
		return nil, domain.ErrNotFound
	}
	return first, nil
}

// fakeRSVPRepo is an in-memory RSVPRepository keyed on (event, guest).
type fakeRSVPRepo struct {
	byID      map[string]*domain.RSVP
	nextID    int
	upsertErr error
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byID: make(map[string]*domain.RSVP), nextID: 1}
}

func (f *fakeRSVPRepo) add(r *domain.RSVP) *domain.RSVP {
	if r.ID == "" {
		r.ID = fmt.Sprintf("rsvp-%d", f.nextID)
		f.nextID++
	}
	f.byID[r.ID] = r
	return r
}

func (f *fakeRSVPRepo) Upsert(ctx context.Context, r *domain.RSVP) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, existing := range f.byID {
		if existing.EventID == r.EventID && existing.GuestID == r.GuestID {
			existing.Status = r.Status
			existing.UpdatedAt = r.UpdatedAt
			*r = *existing
			return nil
		}
	}
	f.add(r)
	return nil
}

func (f *fakeRSVPRepo) GetByID(ctx context.Context, id string) (*domain.RSVP, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) GetByEventAndGuest(ctx context.Context, eventID, guestID string) (*domain.RSVP, error) {
	for _, r := range f.byID {
		if r.EventID == eventID && r.GuestID == guestID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRSVPRepo) ListAttendeesByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	var out []*domain.Attendee
	for _, r := range f.byID {
		if r.EventID == eventID {
			out = append(out, &domain.Attendee{
				RSVPID:  r.ID,
				GuestID: r.GuestID,
				Status:  r.Status,
				Role:    r.Role,
			})
		}
	}
	return out, nil
}

func (f *fakeRSVPRepo) UpdateRole(ctx context.Context, rsvpID, role string) (*domain.RSVP, error) {
	r, ok := f.byID[rsvpID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Role = role
	r.UpdatedAt = time.Now()
	return r, nil
}

// fakeImageRepo is an in-memory GalleryImageRepository.
type fakeImageRepo struct {
	byID      map[string]*domain.GalleryImage
	order     []string
	nextID    int
	createErr error
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{byID: make(map[string]*domain.GalleryImage), nextID: 1}
}

func (f *fakeImageRepo) add(img *domain.GalleryImage) *domain.GalleryImage {
	if img.ID == "" {
		img.ID = fmt.Sprintf("image-%d", f.nextID)
		f.nextID++
	}
	f.byID[img.ID] = img
	f.order = append(f.order, img.ID)
	return img
}

func (f *fakeImageRepo) Create(ctx context.Context, img *domain.GalleryImage) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(img)
	return nil
}

func (f *fakeImageRepo) GetByID(ctx context.Context, id string) (*domain.GalleryImage, error) {
	if img, ok := f.byID[id]; ok {
		return img, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeImageRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.GalleryImage, error) {
	var out []*domain.GalleryImage
	for _, id := range f.order {
		img := f.byID[id]
		if img != nil && img.EventID == eventID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeImageRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeBlobStore records puts and removals and can fail selectively.
type fakeBlobStore struct {
	objects   map[string][]byte
	putErr    error
	removeErr error
	signErr   map[string]error // per-path signing failures
	signed    []string         // paths signed, in order
	removed   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{
		objects: make(map[string][]byte),
		signErr: make(map[string]error),
	}
}

func (f *fakeBlobStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[path] = data
	return nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, paths []string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	for _, p := range paths {
		delete(f.objects, p)
		f.removed = append(f.removed, p)
	}
	return nil
}

func (f *fakeBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	var out []string
	for p := range f.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeBlobStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	if err := f.signErr[path]; err != nil {
		return "", err
	}
	f.signed = append(f.signed, path)
	return "https://blobs.test/" + path + "?sig=abc", nil
}

// fakeEmailService counts sends and can fail.
type fakeEmailService struct {
	welcomes      []*domain.WelcomeEmailData
	notifications []*domain.RSVPNotificationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}

func (f *fakeEmailService) SendRSVPNotification(ctx context.Context, data *domain.RSVPNotificationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.notifications = append(f.notifications, data)
	return nil
}
