package models

import "time"

// Genres is the fixed set of genres the platform accepts. The backend
// validates against the same list; the client checks it first so a bad
// draft never reaches the network.
var Genres = []string{
	"Fiction", "Non-Fiction", "Mystery", "Romance",
	"Science Fiction", "Fantasy", "Biography",
	"History", "Self-Help", "Young Adult",
}

// IsGenre reports whether g is one of the platform's genres.
func IsGenre(g string) bool {
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

// Review is a published book review as the backend returns it.
// Archived reviews are retained but hidden from non-admin listings;
// that filtering happens server-side.
type Review struct {
	ID         int64     `json:"id"`
	BookTitle  string    `json:"book_title"`
	Author     string    `json:"author"`
	Genre      string    `json:"genre"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	UserID     int64     `json:"user_id"`
	UserName   string    `json:"user_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	IsArchived bool      `json:"is_archived"`
}

// ReviewDraft is the user-supplied payload for creating or updating a
// review. Validation rules mirror the backend's: the client-side check is
// a fast rejection, not a security boundary.
type ReviewDraft struct {
	BookTitle  string `json:"book_title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	Genre      string `json:"genre" validate:"required,genre"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string `json:"review_text" validate:"required,min=10"`
}

// ReviewFilter narrows ListReviews results. Zero values mean "no filter";
// an entirely zero filter yields the unfiltered listing. Filtering and
// ordering are done server-side.
type ReviewFilter struct {
	Search string
	Genre  string
	Rating int
}

// IsZero reports whether no filter field is set.
func (f ReviewFilter) IsZero() bool {
	return f.Search == "" && f.Genre == "" && f.Rating == 0
}
