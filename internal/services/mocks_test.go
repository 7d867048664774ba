package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockUserRepository struct {
	users     map[string]*domain.User
	createErr error
	updateErr error
	deleteErr error
	count     int
	created   []*domain.User
	updated   []*domain.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "u-new"
	}
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, user)
	return nil
}

func (m *mockUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int, error) {
	return m.count, nil
}

type mockGroupRepository struct {
	groupsByName map[string]*domain.Group
	groupsByUser map[string][]*domain.Group
	withCounts   []*domain.GroupWithMemberCount
	createErr    error
	deleteErr    error
	assigned     map[string]string
	replaced     map[string][]string
}

func (m *mockGroupRepository) Create(ctx context.Context, group *domain.Group) error {
	if m.createErr != nil {
		return m.createErr
	}
	if group.ID == "" {
		group.ID = "g-new"
	}
	return nil
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	for _, g := range m.groupsByName {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGroupRepository) GetByName(ctx context.Context, name string) (*domain.Group, error) {
	if g, ok := m.groupsByName[name]; ok {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]*domain.GroupWithMemberCount, error) {
	return m.withCounts, nil
}

func (m *mockGroupRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Group, error) {
	return m.groupsByUser[userID], nil
}

func (m *mockGroupRepository) AssignUser(ctx context.Context, userID, groupID string) error {
	if m.assigned == nil {
		m.assigned = map[string]string{}
	}
	m.assigned[userID] = groupID
	return nil
}

func (m *mockGroupRepository) ReplaceUserGroups(ctx context.Context, userID string, groupIDs []string) error {
	if m.replaced == nil {
		m.replaced = map[string][]string{}
	}
	m.replaced[userID] = groupIDs
	return nil
}

func (m *mockGroupRepository) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

type mockEventRepository struct {
	events      map[string]*domain.Event
	details     map[string]*domain.EventDetail
	listItems   []*domain.EventListItem
	byUser      map[string][]*domain.EventListItem
	partCounts  []*domain.EventParticipantRow
	counts      *domain.EventCounts
	listErr     error
	createErr   error
	lastFilter  *domain.EventFilter
	created     []*domain.Event
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	if event.ID == "" {
		event.ID = "e-new"
	}
	m.created = append(m.created, event)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) GetDetail(ctx context.Context, id string) (*domain.EventDetail, error) {
	if d, ok := m.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.lastFilter = &filter
	return m.listItems, nil
}

func (m *mockEventRepository) ListByParticipant(ctx context.Context, userID string, filter domain.EventFilter) ([]*domain.EventListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	items := m.byUser[userID]
	if filter.Mode == domain.ModeAll {
		return items, nil
	}
	var out []*domain.EventListItem
	for _, it := range items {
		if filter.Matches(it) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListParticipantCounts(ctx context.Context) ([]*domain.EventParticipantRow, error) {
	return m.partCounts, nil
}

func (m *mockEventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) Counts(ctx context.Context, today time.Time) (*domain.EventCounts, error) {
	if m.counts != nil {
		return m.counts, nil
	}
	return &domain.EventCounts{}, nil
}

type mockEventImageRepository struct {
	createErr error
	images    []*domain.EventImage
}

func (m *mockEventImageRepository) Create(ctx context.Context, image *domain.EventImage) error {
	if m.createErr != nil {
		return m.createErr
	}
	if image.ID == "" {
		image.ID = "img-new"
	}
	m.images = append(m.images, image)
	return nil
}

func (m *mockEventImageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	return m.images, nil
}

type mockCategoryRepository struct {
	categories map[string]*domain.Category
	createErr  error
	deleted    []string
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.createErr != nil {
		return m.createErr
	}
	if category.ID == "" {
		category.ID = "c-new"
	}
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return domain.ErrNotFound
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type mockRSVPRepository struct {
	createErr error
	rsvps     map[string]*domain.RSVP
	details   []*domain.RSVPDetail
	count     int
	created   []*domain.RSVP
}

func (m *mockRSVPRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	if m.createErr != nil {
		return m.createErr
	}
	if rsvp.ID == "" {
		rsvp.ID = "r-new"
	}
	m.created = append(m.created, rsvp)
	return nil
}

func (m *mockRSVPRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.RSVP, error) {
	if r, ok := m.rsvps[eventID+":"+userID]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockRSVPRepository) ListDetails(ctx context.Context) ([]*domain.RSVPDetail, error) {
	return m.details, nil
}

func (m *mockRSVPRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.rsvps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rsvps, id)
	return nil
}

func (m *mockRSVPRepository) Count(ctx context.Context) (int, error) {
	return m.count, nil
}

type mockActivationTokenRepository struct {
	createErr error
	consumed  bool
	stored    []string
}

func (m *mockActivationTokenRepository) Create(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.stored = append(m.stored, tokenHash)
	return nil
}

func (m *mockActivationTokenRepository) Consume(ctx context.Context, userID, tokenHash string) (bool, error) {
	return m.consumed, nil
}

type mockHasher struct {
	compareErr error
}

func (m *mockHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (m *mockHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hash:"+salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type mockTokenIssuer struct {
	issueErr  error
	lastRoles []string
}

func (m *mockTokenIssuer) Issue(userID, username string, roles []string, expiry time.Duration) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	m.lastRoles = roles
	return "token-" + userID, nil
}

type mockEmailService struct {
	activationErr   error
	confirmationErr error
	activations     []*domain.ActivationEmailData
	confirmations   []*domain.RSVPConfirmationEmailData
}

func (m *mockEmailService) SendActivationLink(ctx context.Context, data *domain.ActivationEmailData) error {
	if m.activationErr != nil {
		return m.activationErr
	}
	m.activations = append(m.activations, data)
	return nil
}

func (m *mockEmailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	if m.confirmationErr != nil {
		return m.confirmationErr
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}

type mockMediaStore struct {
	putErr  error
	puts    []string
	deletes []string
}

func (m *mockMediaStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	m.puts = append(m.puts, key)
	return "https://media.example.com/" + key, nil
}

func (m *mockMediaStore) Delete(ctx context.Context, key string) error {
	m.deletes = append(m.deletes, key)
	return nil
}
