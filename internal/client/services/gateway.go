package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/bookreview/internal/client/api"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/common"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// TokenSource supplies the current access token. *SessionManager
// satisfies it; the gateway queries it on every call instead of holding
// a snapshot, so a logout between screens makes the very next request
// unauthenticated.
type TokenSource interface {
	Token() string
}

// Gateway exposes the platform's operation set, partitioned by required
// role. It validates review drafts client-side before any network I/O.
// Role enforcement itself is server-side; the gateway only reads the
// role to decide what the presentation layer shows.
type Gateway struct {
	client   api.Client
	session  TokenSource
	validate *validator.Validate
	log      logging.Logger
}

// NewGateway wires the gateway to its transport and token source and
// registers the platform's custom validation rules.
func NewGateway(client api.Client, session TokenSource, log logging.Logger) (*Gateway, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return models.IsGenre(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register genre rule: %w", err)
	}
	return &Gateway{client: client, session: session, validate: v, log: log}, nil
}

// ListReviews fetches the public listing, optionally narrowed by the
// filter. Filtering and ordering happen server-side; the client does
// not re-filter. Archived reviews are excluded by the server.
func (g *Gateway) ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error) {
	return g.client.ListReviews(ctx, g.session.Token(), f)
}

// ListMyReviews fetches only the current user's reviews.
func (g *Gateway) ListMyReviews(ctx context.Context) ([]models.Review, error) {
	return g.client.ListMyReviews(ctx, g.session.Token())
}

// CreateReview validates the draft and submits it. The creator becomes
// the owner. A draft that fails validation never reaches the network.
func (g *Gateway) CreateReview(ctx context.Context, d models.ReviewDraft) (*models.Review, error) {
	if err := g.validateDraft(d); err != nil {
		return nil, err
	}
	return g.client.CreateReview(ctx, g.session.Token(), d)
}

// UpdateReview validates the draft and submits the edit. Only the owner
// may succeed; the server enforces ownership.
func (g *Gateway) UpdateReview(ctx context.Context, id int64, d models.ReviewDraft) (*models.Review, error) {
	if err := g.validateDraft(d); err != nil {
		return nil, err
	}
	return g.client.UpdateReview(ctx, g.session.Token(), id, d)
}

// DeleteReview issues the delete; ownership is enforced server-side.
func (g *Gateway) DeleteReview(ctx context.Context, id int64) error {
	return g.client.DeleteReview(ctx, g.session.Token(), id)
}

// ListUsers returns all users. Admin only (server-enforced).
func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	return g.client.ListUsers(ctx, g.session.Token())
}

// DeleteUser deletes a user; the platform cascades deletion of their
// reviews. The "admin cannot delete themself" rule belongs to the
// presentation layer and is re-validated server-side.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	return g.client.DeleteUser(ctx, g.session.Token(), id)
}

// ListAllReviews returns every review including archived ones. Admin only.
func (g *Gateway) ListAllReviews(ctx context.Context) ([]models.Review, error) {
	return g.client.ListAllReviews(ctx, g.session.Token())
}

// ArchiveReview soft-deletes a review. Idempotent and one-directional:
// archiving an archived review leaves it archived, and nothing ever
// resets the flag.
func (g *Gateway) ArchiveReview(ctx context.Context, id int64) (*models.Review, error) {
	return g.client.ArchiveReview(ctx, g.session.Token(), id)
}

// validateDraft runs the client-side checks and collapses any failures
// into one common.ErrValidation with readable field messages.
func (g *Gateway) validateDraft(d models.ReviewDraft) error {
	err := g.validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, draftFieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

func draftFieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "BookTitle":
		return "book title is required"
	case "Author":
		return "author is required"
	case "Genre":
		if fe.Tag() == "genre" {
			return "genre must be one of: " + strings.Join(models.Genres, ", ")
		}
		return "genre is required"
	case "Rating":
		return "rating must be between 1 and 5"
	case "ReviewText":
		if fe.Tag() == "min" {
			return "review text must be at least 10 characters"
		}
		return "review text is required"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
