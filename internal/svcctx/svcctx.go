// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/mwootten/extractor/internal/extract"
	"github.com/mwootten/extractor/internal/providers"
)

// Services holds the core services that flow through request context.
// Endpoints extract what they need via the individual accessors.
type Services struct {
	Annotator *extract.Annotator
	Registry  *providers.Registry
	Logger    *slog.Logger
}

type servicesKey struct{}

// WithServices returns a context carrying the services.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// FromContext returns the services carried by the context, or nil.
func FromContext(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// AnnotatorFrom returns the annotator from the context, or nil.
func AnnotatorFrom(ctx context.Context) *extract.Annotator {
	if s := FromContext(ctx); s != nil {
		return s.Annotator
	}
	return nil
}

// RegistryFrom returns the provider registry from the context, or nil.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := FromContext(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// LoggerFrom returns the logger from the context, or the default logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := FromContext(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
