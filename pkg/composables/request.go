package composables

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/citylingua/citylingua/pkg/constants"
)

var (
	ErrNoTenantID    = errors.New("no tenant id found in context")
	ErrNoPrincipalID = errors.New("no principal id found in context")
)

// WithTenantID scopes the context to a single tenant. Every repository query
// derives its tenant filter from this value, never from request payloads.
func WithTenantID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.TenantIDKey, id)
}

func UseTenantID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.TenantIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoTenantID
	}
	return id, nil
}

func WithPrincipalID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, constants.PrincipalIDKey, id)
}

func UsePrincipalID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(constants.PrincipalIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, ErrNoPrincipalID
	}
	return id, nil
}

func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the request-scoped logger. Panics when none is attached.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger := ctx.Value(constants.LoggerKey)
	if logger == nil {
		panic("logger not found")
	}
	return logger.(*logrus.Entry)
}
