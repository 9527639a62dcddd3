// Package api contains the REST bindings for the Book Review Platform
// backend. The bindings are stateless: every authenticated method takes the
// bearer token as an argument, so no shared client configuration is ever
// mutated and a stale token can never be replayed from a cached header.
package api

import (
	"context"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

// Client is the transport surface consumed by the session manager and the
// request gateway. Implementations must honor context cancellation.
type Client interface {
	// Register creates an account and returns the server-generated PIN.
	// It performs no login and stores nothing.
	Register(ctx context.Context, fullName string) (string, error)

	// Login exchanges credentials for a token and a user snapshot.
	// asAdmin selects the admin endpoint; the request shape is identical.
	Login(ctx context.Context, fullName string, pin []byte, asAdmin bool) (string, *models.User, error)

	// User-scope operations.
	ListReviews(ctx context.Context, token string, f models.ReviewFilter) ([]models.Review, error)
	ListMyReviews(ctx context.Context, token string) ([]models.Review, error)
	CreateReview(ctx context.Context, token string, d models.ReviewDraft) (*models.Review, error)
	UpdateReview(ctx context.Context, token string, id int64, d models.ReviewDraft) (*models.Review, error)
	DeleteReview(ctx context.Context, token string, id int64) error

	// Admin-scope operations. Role enforcement is server-side; the client
	// only partitions the surface.
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	DeleteUser(ctx context.Context, token string, id int64) error
	ListAllReviews(ctx context.Context, token string) ([]models.Review, error)
	ArchiveReview(ctx context.Context, token string, id int64) (*models.Review, error)
}
