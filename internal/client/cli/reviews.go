package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
)

// List shows the public review feed, unfiltered.
func (a *App) List(ctx context.Context) error {
	reviews, err := a.gateway.ListReviews(ctx, models.ReviewFilter{})
	if err != nil {
		return err
	}
	printReviews(reviews)
	return nil
}

// Filter prompts for search text, genre and rating, then lists matching
// reviews. Empty answers leave that filter off; all empty answers give
// the unfiltered listing.
func (a *App) Filter(ctx context.Context) error {
	search, err := getSimpleText(a.reader, "Search (empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	genre, err := a.promptGenre(true)
	if err != nil {
		return err
	}
	rating, err := GetInt(a.reader, "Rating 1-5 (empty for any)", 0, os.Stdout)
	if err != nil {
		return err
	}

	f := models.ReviewFilter{Search: search, Genre: genre, Rating: rating}
	reviews, err := a.gateway.ListReviews(ctx, f)
	if err != nil {
		return err
	}
	printReviews(reviews)
	return nil
}

// MyReviews shows only the current user's reviews.
func (a *App) MyReviews(ctx context.Context) error {
	reviews, err := a.gateway.ListMyReviews(ctx)
	if err != nil {
		return err
	}
	printReviews(reviews)
	return nil
}

// AddReview prompts for a draft and submits it.
func (a *App) AddReview(ctx context.Context) error {
	draft, err := a.promptDraft(models.ReviewDraft{Rating: 5})
	if err != nil {
		return err
	}

	review, err := a.gateway.CreateReview(ctx, draft)
	if err != nil {
		return err
	}
	printfFn("Review #%d created.\n", review.ID)
	return nil
}

// EditReview prompts for a review id and a replacement draft, then
// submits the edit. Only the owner's edit will succeed server-side.
func (a *App) EditReview(ctx context.Context) error {
	id, err := GetInt(a.reader, "Review id to edit", 0, os.Stdout)
	if err != nil {
		return err
	}
	if id == 0 {
		printlnFn("Cancelled.")
		return nil
	}

	draft, err := a.promptDraft(models.ReviewDraft{Rating: 5})
	if err != nil {
		return err
	}

	review, err := a.gateway.UpdateReview(ctx, int64(id), draft)
	if err != nil {
		return err
	}
	printfFn("Review #%d updated.\n", review.ID)
	return nil
}

// DeleteReview prompts for a review id, confirms, and deletes it.
func (a *App) DeleteReview(ctx context.Context) error {
	id, err := GetInt(a.reader, "Review id to delete", 0, os.Stdout)
	if err != nil {
		return err
	}
	if id == 0 {
		printlnFn("Cancelled.")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete review #%d?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.gateway.DeleteReview(ctx, int64(id)); err != nil {
		return err
	}
	printfFn("Review #%d deleted.\n", id)
	return nil
}

// promptDraft collects all review fields. The submitted draft is
// validated by the gateway, so typos come back as one readable message
// before anything is sent.
func (a *App) promptDraft(base models.ReviewDraft) (models.ReviewDraft, error) {
	var d models.ReviewDraft
	var err error

	d.BookTitle, err = getSimpleText(a.reader, "Book title", os.Stdout)
	if err != nil {
		return d, err
	}
	d.Author, err = getSimpleText(a.reader, "Author", os.Stdout)
	if err != nil {
		return d, err
	}
	d.Genre, err = a.promptGenre(false)
	if err != nil {
		return d, err
	}
	d.Rating, err = GetInt(a.reader, fmt.Sprintf("Rating 1-5 (default %d)", base.Rating), base.Rating, os.Stdout)
	if err != nil {
		return d, err
	}
	d.ReviewText, err = getSimpleText(a.reader, "Review text (at least 10 characters)", os.Stdout)
	if err != nil {
		return d, err
	}
	return d, nil
}

// promptGenre shows the numbered genre list and accepts either a number
// or a genre name. With optional=true an empty answer means "any".
func (a *App) promptGenre(optional bool) (string, error) {
	for i, g := range models.Genres {
		printfFn("  %2d. %s\n", i+1, g)
	}
	prompt := "Genre (number or name)"
	if optional {
		prompt = "Genre (number or name, empty for any)"
	}

	answer, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return "", err
	}
	if answer == "" && optional {
		return "", nil
	}

	if n, err := parseIndex(answer, len(models.Genres)); err == nil {
		return models.Genres[n-1], nil
	}
	// Fall through to the literal name; the gateway validates it.
	return answer, nil
}

func parseIndex(s string, max int) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, err
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("index out of range: %d", n)
	}
	return n, nil
}

func printReviews(reviews []models.Review) {
	if len(reviews) == 0 {
		printlnFn("No reviews found.")
		return
	}
	for _, r := range reviews {
		printReview(r)
	}
	printfFn("%d review(s).\n", len(reviews))
}

func printReview(r models.Review) {
	badge := ""
	if r.IsArchived {
		badge = " [ARCHIVED]"
	}
	printfFn("#%d %s by %s (%s) %d/5%s - %s\n", r.ID, r.BookTitle, r.Author, r.Genre, r.Rating, badge, r.UserName)
	// Truncate on a rune boundary so multi-byte text is never split.
	text := r.ReviewText
	if runes := []rune(text); len(runes) > 120 {
		text = string(runes[:117]) + "..."
	}
	printfFn("    %s\n", strings.ReplaceAll(text, "\n", " "))
}
