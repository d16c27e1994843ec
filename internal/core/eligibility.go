package core

import (
	"time"

	"pulse-backend/internal/models"
)

// EligiblePeriods returns the feedback periods the user may still
// complete: active, not yet ended (strictly — a period ending exactly
// now is out), not the user's own department, and not already covered
// by one of the user's submissions. Input order is preserved, so
// callers that fetch periods sorted by end date keep that order.
//
// Periods with an empty question list pass through here untouched;
// the submission validator is the one that refuses them.
func EligiblePeriods(user models.User, periods []models.FeedbackPeriod, submitted []models.Feedback, now time.Time) []models.FeedbackPeriod {
	covered := make(map[models.Department]bool, len(submitted))
	for _, f := range submitted {
		if f.UserID == user.ID {
			covered[f.TargetDepartment] = true
		}
	}

	eligible := make([]models.FeedbackPeriod, 0, len(periods))
	for _, p := range periods {
		if !p.Active || !p.EndDate.After(now) {
			continue
		}
		if p.Department == user.Department {
			continue
		}
		if covered[p.Department] {
			continue
		}
		eligible = append(eligible, p)
	}
	return eligible
}

// SubmittedDepartments lists the target departments the user has
// already rated, in submission order without duplicates.
func SubmittedDepartments(user models.User, submitted []models.Feedback) []models.Department {
	seen := make(map[models.Department]bool, len(submitted))
	out := make([]models.Department, 0, len(submitted))
	for _, f := range submitted {
		if f.UserID != user.ID || seen[f.TargetDepartment] {
			continue
		}
		seen[f.TargetDepartment] = true
		out = append(out, f.TargetDepartment)
	}
	return out
}
