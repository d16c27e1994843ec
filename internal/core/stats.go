package core

import (
	"pulse-backend/internal/models"
)

// ComputeStats aggregates raw submissions into per-department
// statistics. One entry is produced for every requested department, in
// the declared department order; departments with no feedback report
// zeros rather than NaN.
//
// The department average is a flat mean over every individual question
// rating across all of its submissions, not a mean of per-submission
// means — submissions carrying more questions weigh proportionally
// more. Question stats keep first-seen order for reproducibility.
func ComputeStats(allFeedback []models.Feedback, forDepartments []models.Department) []models.DepartmentFeedbackStats {
	requested := make(map[models.Department]bool, len(forDepartments))
	for _, d := range forDepartments {
		requested[d] = true
	}

	stats := make([]models.DepartmentFeedbackStats, 0, len(forDepartments))
	for _, dept := range models.Departments {
		if !requested[dept] {
			continue
		}
		stats = append(stats, departmentStats(allFeedback, dept))
	}
	return stats
}

func departmentStats(allFeedback []models.Feedback, dept models.Department) models.DepartmentFeedbackStats {
	var subset []models.Feedback
	for _, f := range allFeedback {
		if f.TargetDepartment == dept {
			subset = append(subset, f)
		}
	}
	if len(subset) == 0 {
		return models.DepartmentFeedbackStats{
			Department:     dept,
			AverageRating:  0,
			TotalFeedbacks: 0,
			QuestionStats:  []models.QuestionStats{},
		}
	}

	type questionAcc struct {
		text  string
		total int
		count int
	}
	var order []string
	byQuestion := make(map[string]*questionAcc)

	ratingTotal := 0
	ratingCount := 0
	for _, f := range subset {
		for _, q := range f.Questions {
			ratingTotal += q.Rating
			ratingCount++

			acc, ok := byQuestion[q.ID]
			if !ok {
				acc = &questionAcc{text: q.Text}
				byQuestion[q.ID] = acc
				order = append(order, q.ID)
			}
			acc.total += q.Rating
			acc.count++
		}
	}

	questionStats := make([]models.QuestionStats, 0, len(order))
	for _, id := range order {
		acc := byQuestion[id]
		questionStats = append(questionStats, models.QuestionStats{
			QuestionID:    id,
			QuestionText:  acc.text,
			AverageRating: float64(acc.total) / float64(acc.count),
		})
	}

	avg := 0.0
	if ratingCount > 0 {
		avg = float64(ratingTotal) / float64(ratingCount)
	}
	return models.DepartmentFeedbackStats{
		Department:     dept,
		AverageRating:  avg,
		TotalFeedbacks: len(subset),
		QuestionStats:  questionStats,
	}
}
