package order

import (
	"time"

	"marketplace/internal/pkg/errs"
)

// maxReviewCommentLength bounds the free-text comment of a review.
const maxReviewCommentLength = 1000

// Review is the buyer's one-time rating of a completed order.
type Review struct {
	rating     int
	comment    string
	reviewedAt time.Time
}

// NewReview creates a validated review. The rating must be between 1 and 5.
func NewReview(rating int, comment string, now time.Time) (Review, error) {
	if rating < 1 || rating > 5 {
		return Review{}, errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	if len(comment) > maxReviewCommentLength {
		return Review{}, errs.NewValueIsOutOfRangeError("review comment length",
			len(comment), 0, maxReviewCommentLength)
	}

	return Review{rating: rating, comment: comment, reviewedAt: now}, nil
}

// RestoreReview reconstructs a review from persistence.
func RestoreReview(rating int, comment string, reviewedAt time.Time) Review {
	return Review{rating: rating, comment: comment, reviewedAt: reviewedAt}
}

// Rating returns the star rating, 1 to 5.
func (r Review) Rating() int {
	return r.rating
}

// Comment returns the review comment.
func (r Review) Comment() string {
	return r.comment
}

// ReviewedAt returns when the review was left.
func (r Review) ReviewedAt() time.Time {
	return r.reviewedAt
}
