package cli

import (
	"context"
	"fmt"
	"os"
)

// Users lists every account on the platform. Admin only; a non-admin
// token gets an authorization error back from the server.
func (a *App) Users(ctx context.Context) error {
	users, err := a.gateway.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		printfFn("#%d %s (%s) since %s\n", u.ID, u.FullName, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	printfFn("%d user(s).\n", len(users))
	return nil
}

// DeleteUser deletes an account; the platform cascades deletion of the
// account's reviews. Deleting yourself is refused here, before any
// request goes out; the server re-validates regardless.
func (a *App) DeleteUser(ctx context.Context) error {
	id, err := GetInt(a.reader, "User id to delete", 0, os.Stdout)
	if err != nil {
		return err
	}
	if id == 0 {
		printlnFn("Cancelled.")
		return nil
	}

	if me := a.session.CurrentUser(); me != nil && me.ID == int64(id) {
		printlnFn("You cannot delete your own account.")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete user #%d and all their reviews?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.gateway.DeleteUser(ctx, int64(id)); err != nil {
		return err
	}
	printfFn("User #%d deleted.\n", id)
	return nil
}

// AllReviews lists every review, archived ones included.
func (a *App) AllReviews(ctx context.Context) error {
	reviews, err := a.gateway.ListAllReviews(ctx)
	if err != nil {
		return err
	}
	printReviews(reviews)
	return nil
}

// ArchiveReview soft-deletes a review. Archiving an already-archived
// review is a no-op on the server; there is no way to unarchive.
func (a *App) ArchiveReview(ctx context.Context) error {
	id, err := GetInt(a.reader, "Review id to archive", 0, os.Stdout)
	if err != nil {
		return err
	}
	if id == 0 {
		printlnFn("Cancelled.")
		return nil
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Archive review #%d?", id), os.Stdout)
	if err != nil {
		return err
	}
	if !ok {
		printlnFn("Cancelled.")
		return nil
	}

	review, err := a.gateway.ArchiveReview(ctx, int64(id))
	if err != nil {
		return err
	}
	printfFn("Review #%d archived (archived=%t).\n", review.ID, review.IsArchived)
	return nil
}

// Stats prints the active/archived breakdown the admin dashboard shows.
func (a *App) Stats(ctx context.Context) error {
	reviews, err := a.gateway.ListAllReviews(ctx)
	if err != nil {
		return err
	}

	archived := 0
	for _, r := range reviews {
		if r.IsArchived {
			archived++
		}
	}
	printfFn("Total reviews:    %d\n", len(reviews))
	printfFn("Active reviews:   %d\n", len(reviews)-archived)
	printfFn("Archived reviews: %d\n", archived)
	return nil
}
