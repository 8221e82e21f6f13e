package itf

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/domain/entities/city"
	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/eventbus"
	"github.com/citylingua/citylingua/pkg/repo"
)

// TestContext is a fluent builder for test environments.
type TestContext struct {
	citySlug  string
	otherSlug string
}

func NewTestContext() *TestContext {
	return &TestContext{
		citySlug:  "amsterdam",
		otherSlug: "utrecht",
	}
}

func (tc *TestContext) WithCitySlug(slug string) *TestContext {
	tc.citySlug = slug
	return tc
}

// Build seeds the store with two cities and the standard cast: a superuser,
// an admin and an operator of the first city, and a stranger holding no
// grants anywhere.
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	store := NewStore()
	ctx := context.Background()

	c, err := store.Cities().Create(ctx, city.New(tc.citySlug, tc.citySlug))
	if err != nil {
		tb.Fatalf("seed city: %v", err)
	}
	other, err := store.Cities().Create(ctx, city.New(tc.otherSlug, tc.otherSlug))
	if err != nil {
		tb.Fatalf("seed city: %v", err)
	}

	seedAccount := func(email string, opts ...account.Option) *account.Account {
		a, err := store.Accounts().Create(ctx, account.New(email, email, opts...))
		if err != nil {
			tb.Fatalf("seed account %s: %v", email, err)
		}
		return a
	}
	superuser := seedAccount("root@example.com", account.WithGlobalRole(account.GlobalRoleSuperuser))
	admin := seedAccount("admin@example.com")
	operator := seedAccount("operator@example.com")
	stranger := seedAccount("stranger@example.com")

	seedGrant := func(a *account.Account, role grant.Role) {
		if _, err := store.Grants().Upsert(ctx, grant.New(c.ID(), a.ID(), role)); err != nil {
			tb.Fatalf("seed grant: %v", err)
		}
	}
	seedGrant(admin, grant.RoleAdmin)
	seedGrant(operator, grant.RoleOperator)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return &TestEnvironment{
		TB:        tb,
		Store:     store,
		Tx:        NewTransactor(store),
		Bus:       eventbus.NewEventPublisher(logger),
		City:      c,
		OtherCity: other,
		Superuser: superuser,
		Admin:     admin,
		Operator:  operator,
		Stranger:  stranger,
		logger:    logger,
	}
}

// TestEnvironment bundles the seeded store with its fixture principals.
type TestEnvironment struct {
	TB        testing.TB
	Store     *Store
	Tx        repo.Transactor
	Bus       eventbus.EventBus
	City      *city.City
	OtherCity *city.City
	Superuser *account.Account
	Admin     *account.Account
	Operator  *account.Account
	Stranger  *account.Account
	logger    *logrus.Logger
}

// As returns a context acting as the given principal within the fixture
// city.
func (e *TestEnvironment) As(a *account.Account) context.Context {
	return e.AsIn(a, e.City)
}

// AsIn returns a context acting as the given principal within an arbitrary
// city.
func (e *TestEnvironment) AsIn(a *account.Account, c *city.City) context.Context {
	ctx := context.Background()
	ctx = composables.WithTenantID(ctx, c.ID())
	ctx = composables.WithPrincipalID(ctx, a.ID())
	return composables.WithLogger(ctx, logrus.NewEntry(e.logger))
}

// Anonymous returns a context carrying the tenant but no principal.
func (e *TestEnvironment) Anonymous() context.Context {
	ctx := composables.WithTenantID(context.Background(), e.City.ID())
	return composables.WithLogger(ctx, logrus.NewEntry(e.logger))
}
