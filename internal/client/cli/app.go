// Package cli implements the interactive terminal front end of the Book
// Review client. It is presentation glue: every decision with an actual
// failure mode lives in the services package.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/bookreview/internal/client/api"
	"github.com/dmitrijs2005/bookreview/internal/client/config"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/client/services"
	"github.com/dmitrijs2005/bookreview/internal/client/storage"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// sessionManager is the slice of services.SessionManager the CLI needs.
type sessionManager interface {
	Restore(ctx context.Context)
	Login(ctx context.Context, fullName string, pin []byte, asAdmin bool) error
	Register(ctx context.Context, fullName string) (string, error)
	Logout(ctx context.Context) error
	State() services.State
	CurrentUser() *models.User
	IsAdmin() bool
}

// reviewGateway is the slice of services.Gateway the CLI needs.
type reviewGateway interface {
	ListReviews(ctx context.Context, f models.ReviewFilter) ([]models.Review, error)
	ListMyReviews(ctx context.Context) ([]models.Review, error)
	CreateReview(ctx context.Context, d models.ReviewDraft) (*models.Review, error)
	UpdateReview(ctx context.Context, id int64, d models.ReviewDraft) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListAllReviews(ctx context.Context) ([]models.Review, error)
	ArchiveReview(ctx context.Context, id int64) (*models.Review, error)
}

// App wires the session manager and gateway to the command loop.
type App struct {
	config  *config.Config
	log     logging.Logger
	session sessionManager
	gateway reviewGateway
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, log)
	session := services.NewSessionManager(apiClient, db, log)
	gateway, err := services.NewGateway(apiClient, session, log)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  cfg,
		log:     log,
		session: session,
		gateway: gateway,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and enters the command loop.
// Restore completes before the first prompt, so no authorized call can
// be issued against an uninitialized session.
func (a *App) Run(ctx context.Context) {
	a.session.Restore(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == services.StateLoggedIn
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	u := a.session.CurrentUser()
	s := u.FullName
	if a.session.IsAdmin() {
		s += " admin"
	}
	return fmt.Sprintf("(%s) ", s)
}
