// Package itf provides in-memory test fixtures: repository implementations
// over plain maps, a transactor with snapshot/rollback, and a fluent builder
// that seeds a city with the standard cast of principals. Tests exercise the
// full service stack without a database; the fakes report constraint
// violations as pgconn errors with the same constraint names the schema uses,
// so the service-boundary error mapping is covered too.
package itf

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
)

type grantKey struct {
	cityID    uuid.UUID
	accountID uuid.UUID
}

type assignKey struct {
	entityID uuid.UUID
	valueID  uuid.UUID
}

type translationKey struct {
	entityID uuid.UUID
	locale   string
}

// Store is the shared in-memory database. Entities are immutable (setters
// clone), so snapshots only need to copy the maps themselves.
type Store struct {
	mu           sync.RWMutex
	cities       map[uuid.UUID]*city.City
	accounts     map[uuid.UUID]*account.Account
	grants       map[grantKey]*grant.RoleGrant
	languages    map[uuid.UUID]*languageRow
	districts    map[uuid.UUID]*districtRow
	types        map[uuid.UUID]*typeRow
	values       map[uuid.UUID]*valueRow
	assignments  map[assignKey]*assignmentRow
	translations map[translationKey]translationRow
}

func NewStore() *Store {
	return &Store{
		cities:       map[uuid.UUID]*city.City{},
		accounts:     map[uuid.UUID]*account.Account{},
		grants:       map[grantKey]*grant.RoleGrant{},
		languages:    map[uuid.UUID]*languageRow{},
		districts:    map[uuid.UUID]*districtRow{},
		types:        map[uuid.UUID]*typeRow{},
		values:       map[uuid.UUID]*valueRow{},
		assignments:  map[assignKey]*assignmentRow{},
		translations: map[translationKey]translationRow{},
	}
}

type snapshot struct {
	cities       map[uuid.UUID]*city.City
	accounts     map[uuid.UUID]*account.Account
	grants       map[grantKey]*grant.RoleGrant
	languages    map[uuid.UUID]*languageRow
	districts    map[uuid.UUID]*districtRow
	types        map[uuid.UUID]*typeRow
	values       map[uuid.UUID]*valueRow
	assignments  map[assignKey]*assignmentRow
	translations map[translationKey]translationRow
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &snapshot{
		cities:       copyMap(s.cities),
		accounts:     copyMap(s.accounts),
		grants:       copyMap(s.grants),
		languages:    copyMap(s.languages),
		districts:    copyMap(s.districts),
		types:        copyMap(s.types),
		values:       copyMap(s.values),
		assignments:  copyMap(s.assignments),
		translations: copyMap(s.translations),
	}
}

func (s *Store) restore(snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = snap.cities
	s.accounts = snap.accounts
	s.grants = snap.grants
	s.languages = snap.languages
	s.districts = snap.districts
	s.types = snap.types
	s.values = snap.values
	s.assignments = snap.assignments
	s.translations = snap.translations
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value violates unique constraint \"" + constraint + "\""}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint, Message: "violates foreign key constraint \"" + constraint + "\""}
}

// --- cities ---

type cityRepo struct{ s *Store }

func (s *Store) Cities() city.Repository { return &cityRepo{s} }

func (r *cityRepo) GetByID(_ context.Context, id uuid.UUID) (*city.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cities[id]
	if !ok {
		return nil, city.ErrCityNotFound
	}
	return c, nil
}

func (r *cityRepo) GetBySlug(_ context.Context, slug string) (*city.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.cities {
		if c.Slug() == slug {
			return c, nil
		}
	}
	return nil, city.ErrCityNotFound
}

func (r *cityRepo) GetAll(_ context.Context) ([]*city.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*city.City, 0, len(r.s.cities))
	for _, c := range r.s.cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug() < out[j].Slug() })
	return out, nil
}

func (r *cityRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*city.City, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*city.City, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.s.cities[id]; ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug() < out[j].Slug() })
	return out, nil
}

func (r *cityRepo) Create(_ context.Context, c *city.City) (*city.City, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.cities {
		if existing.Slug() == c.Slug() {
			return nil, uniqueViolation("cities_slug_key")
		}
	}
	r.s.cities[c.ID()] = c
	return c, nil
}

func (r *cityRepo) Update(_ context.Context, c *city.City) (*city.City, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cities[c.ID()]; !ok {
		return nil, city.ErrCityNotFound
	}
	r.s.cities[c.ID()] = c
	return c, nil
}

// --- accounts ---

type accountRepo struct{ s *Store }

func (s *Store) Accounts() account.Repository { return &accountRepo{s} }

func (r *accountRepo) GetByID(_ context.Context, id uuid.UUID) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (r *accountRepo) GetByEmail(_ context.Context, email string) (*account.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.accounts {
		if a.Email() == email {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *accountRepo) Create(_ context.Context, a *account.Account) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.accounts {
		if existing.Email() == a.Email() {
			return nil, uniqueViolation("accounts_email_key")
		}
	}
	r.s.accounts[a.ID()] = a
	return a, nil
}

func (r *accountRepo) Update(_ context.Context, a *account.Account) (*account.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.accounts[a.ID()]; !ok {
		return nil, account.ErrAccountNotFound
	}
	r.s.accounts[a.ID()] = a
	return a, nil
}

// --- role grants ---

type grantRepo struct{ s *Store }

func (s *Store) Grants() grant.Repository { return &grantRepo{s} }

func (r *grantRepo) GetForAccount(_ context.Context, cityID, accountID uuid.UUID) (*grant.RoleGrant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.grants[grantKey{cityID, accountID}]
	if !ok {
		return nil, grant.ErrGrantNotFound
	}
	return g, nil
}

func (r *grantRepo) ListForCity(_ context.Context, cityID uuid.UUID) ([]*grant.RoleGrant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*grant.RoleGrant
	for k, g := range r.s.grants {
		if k.cityID == cityID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID().String() < out[j].AccountID().String() })
	return out, nil
}

func (r *grantRepo) ListForAccount(_ context.Context, accountID uuid.UUID) ([]*grant.RoleGrant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*grant.RoleGrant
	for k, g := range r.s.grants {
		if k.accountID == accountID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CityID().String() < out[j].CityID().String() })
	return out, nil
}

func (r *grantRepo) Upsert(_ context.Context, g *grant.RoleGrant) (*grant.RoleGrant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.grants[grantKey{g.CityID(), g.AccountID()}] = g
	return g, nil
}

func (r *grantRepo) Delete(_ context.Context, cityID, accountID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.grants, grantKey{cityID, accountID})
	return nil
}
