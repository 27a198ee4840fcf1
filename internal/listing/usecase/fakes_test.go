package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// memListings copies on every read and write so usecases never alias stored state.
type memListings struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.Listing
	failErr error
	// afterFind runs on the stored listing after a FindByID copy is handed out.
	afterFind func(stored *domain.Listing)
}

func newMemListings() *memListings {
	return &memListings{byID: map[string]*domain.Listing{}}
}

func cloneListing(l *domain.Listing) *domain.Listing {
	c := *l
	c.Categories = append([]domain.Category(nil), l.Categories...)
	return &c
}

func (r *memListings) put(l *domain.Listing) *domain.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		r.seq++
		l.ID = fmt.Sprintf("listing-%d", r.seq)
	}
	r.byID[l.ID] = cloneListing(l)
	return l
}

func (r *memListings) get(id string) *domain.Listing {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.byID[id]; ok {
		return cloneListing(l)
	}
	return nil
}

func (r *memListings) Create(ctx context.Context, listing *domain.Listing) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.put(listing)
	return nil
}

func (r *memListings) Update(ctx context.Context, listing *domain.Listing, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[listing.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	r.byID[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memListings) Delete(ctx context.Context, id string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return domain.ErrConflict
	}
	delete(r.byID, id)
	return nil
}

func (r *memListings) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneListing(stored)
	if r.afterFind != nil {
		r.afterFind(stored)
	}
	return out, nil
}

func (r *memListings) FindByFilter(ctx context.Context, f domain.ListingFilter) ([]*domain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Listing
	for _, l := range r.byID {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.OwnerID != "" && l.OwnerID != f.OwnerID {
			continue
		}
		if f.Province != "" && !strings.EqualFold(l.Book.Province, f.Province) {
			continue
		}
		matched = append(matched, cloneListing(l))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, int64(len(matched)), nil
}

func (r *memListings) DeleteByOwner(ctx context.Context, ownerID string) ([]*domain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed []*domain.Listing
	for id, l := range r.byID {
		if l.OwnerID == ownerID {
			removed = append(removed, cloneListing(l))
			delete(r.byID, id)
		}
	}
	return removed, nil
}

type memAccounts struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Account
}

func newMemAccounts(accounts ...*domain.Account) *memAccounts {
	r := &memAccounts{byID: map[string]*domain.Account{}}
	for _, a := range accounts {
		c := *a
		r.byID[a.ID] = &c
	}
	return r
}

func (r *memAccounts) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == account.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.seq++
	account.ID = fmt.Sprintf("account-%d", r.seq)
	c := *account
	r.byID[account.ID] = &c
	return nil
}

func (r *memAccounts) Update(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[account.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *account
	r.byID[account.ID] = &c
	return nil
}

func (r *memAccounts) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memAccounts) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *memAccounts) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Email == email {
			c := *a
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAccounts) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[string]*domain.Account{}
	for _, id := range ids {
		if a, ok := r.byID[id]; ok {
			c := *a
			out[id] = &c
		}
	}
	return out, nil
}

func (r *memAccounts) List(ctx context.Context, page domain.Page) ([]*domain.Account, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.byID))
	for _, a := range r.byID {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type memReports struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Report
}

func newMemReports() *memReports {
	return &memReports{byID: map[string]*domain.Report{}}
}

func (r *memReports) Create(ctx context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	report.ID = fmt.Sprintf("report-%d", r.seq)
	c := *report
	r.byID[report.ID] = &c
	return nil
}

func (r *memReports) Update(ctx context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[report.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *report
	r.byID[report.ID] = &c
	return nil
}

func (r *memReports) FindByID(ctx context.Context, id string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rep, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *rep
	return &c, nil
}

func (r *memReports) FindByFilter(ctx context.Context, f domain.ReportFilter) ([]*domain.Report, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Report
	for _, rep := range r.byID {
		if f.Status != nil && rep.Status != *f.Status {
			continue
		}
		c := *rep
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

type memCategories struct {
	byID     map[string]domain.Category
	listings *memListings
}

func newMemCategories(categories ...domain.Category) *memCategories {
	r := &memCategories{byID: map[string]domain.Category{}}
	for _, c := range categories {
		r.byID[c.ID] = c
	}
	return r
}

func (r *memCategories) Create(ctx context.Context, c *domain.Category) error {
	for _, existing := range r.byID {
		if strings.EqualFold(existing.Name, c.Name) {
			return domain.ErrDuplicateName
		}
	}
	c.ID = fmt.Sprintf("category-%d", len(r.byID)+1)
	r.byID[c.ID] = *c
	return nil
}

func (r *memCategories) Update(ctx context.Context, c *domain.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[c.ID] = *c
	return nil
}

func (r *memCategories) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memCategories) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *memCategories) FindByIDs(ctx context.Context, ids []string) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategories) ListingIDs(ctx context.Context, id string) ([]string, error) {
	if r.listings == nil {
		return nil, nil
	}
	r.listings.mu.Lock()
	defer r.listings.mu.Unlock()
	var ids []string
	for _, l := range r.listings.byID {
		for _, c := range l.Categories {
			if c.ID == id {
				ids = append(ids, l.ID)
				break
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memCategories) ListWithCounts(ctx context.Context) ([]domain.CategoryCount, error) {
	out := make([]domain.CategoryCount, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, domain.CategoryCount{Category: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// countingTx records how many units were opened.
type countingTx struct {
	calls int
}

func (t *countingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Store(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, contentType, data)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Release(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) ListingModerated(ctx context.Context, to *domain.Account, listing *domain.Listing) error {
	args := m.Called(ctx, to, listing)
	return args.Error(0)
}

// plainHasher stores passwords with a fixed prefix.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (plainHasher) Verify(hash, plain string) bool { return hash == "hashed:"+plain }

type stubTokens struct{}

func (stubTokens) Issue(accountID string, role domain.Role) (string, error) {
	if accountID == "" {
		return "", errors.New("empty subject")
	}
	return "token:" + accountID + ":" + string(role), nil
}

// fixture bundles the fakes behind a Deps value.
type fixture struct {
	listings   *memListings
	accounts   *memAccounts
	reports    *memReports
	categories *memCategories
	tx         *countingTx
	events     *MockEventPublisher
	files      *MockFileStorage
	deps       Deps
}

var (
	alice = &domain.Account{ID: "alice", Name: "Alice", Email: "alice@example.com", PasswordHash: "hashed:secret1", Role: domain.RoleUser, Status: domain.AccountActive}
	bob   = &domain.Account{ID: "bob", Name: "Bob", Email: "bob@example.com", PasswordHash: "hashed:secret2", Role: domain.RoleUser, Status: domain.AccountActive}
	carol = &domain.Account{ID: "carol", Name: "Carol", Email: "carol@example.com", PasswordHash: "hashed:secret3", Role: domain.RoleUser, Status: domain.AccountSuspended}
	root  = &domain.Account{ID: "root", Name: "Root", Email: "root@example.com", PasswordHash: "hashed:rootpw", Role: domain.RoleAdmin, Status: domain.AccountActive}

	fiction = domain.Category{ID: "fiction", Name: "Fiction"}
	scifi   = domain.Category{ID: "scifi", Name: "Science Fiction"}
)

func newFixture() *fixture {
	f := &fixture{
		listings:   newMemListings(),
		accounts:   newMemAccounts(alice, bob, carol, root),
		reports:    newMemReports(),
		categories: newMemCategories(fiction, scifi),
		tx:         &countingTx{},
		events:     &MockEventPublisher{},
		files:      &MockFileStorage{},
	}
	f.categories.listings = f.listings
	f.events.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.deps = Deps{
		Listings:   f.listings,
		Accounts:   f.accounts,
		Reports:    f.reports,
		Categories: f.categories,
		Tx:         f.tx,
		Files:      f.files,
		Events:     f.events,
		Hasher:     plainHasher{},
		Tokens:     stubTokens{},
		Now:        func() time.Time { return testNow },
	}
	return f
}

func viewerOf(a *domain.Account) domain.Viewer {
	return domain.NewViewer(a.ID, a.Role)
}

// seed stores a listing owned by owner in the given status.
func (f *fixture) seed(owner *domain.Account, status domain.ListingStatus) *domain.Listing {
	return f.listings.put(&domain.Listing{
		OwnerID: owner.ID,
		Book: domain.Book{
			Title:    "Dune",
			Author:   "Frank Herbert",
			Price:    12.5,
			Image:    "photos/dune.jpg",
			Province: "Almaty",
		},
		ContactInfo: "+7 700 000 0000",
		Status:      status,
		Categories:  []domain.Category{scifi, fiction},
		Version:     1,
		CreatedAt:   testNow.Add(-time.Hour),
		UpdatedAt:   testNow.Add(-time.Hour),
	})
}

func (f *fixture) published(subject string) int {
	n := 0
	for _, c := range f.events.Calls {
		if c.Method == "Publish" && c.Arguments.String(1) == subject {
			n++
		}
	}
	return n
}
