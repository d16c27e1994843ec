package core_test

import (
	"testing"

	"pulse-backend/internal/core"
	"pulse-backend/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func feedbackFor(target models.Department, ratings map[string]int) models.Feedback {
	questions := make([]models.FeedbackQuestion, 0, len(ratings))
	// Deterministic order for the test fixtures: q1, q2, q3...
	for _, id := range []string{"q1", "q2", "q3", "q4"} {
		rating, ok := ratings[id]
		if !ok {
			continue
		}
		questions = append(questions, models.FeedbackQuestion{
			Question: models.Question{ID: id, Text: "question " + id, Department: target},
			Rating:   rating,
		})
	}
	return models.Feedback{
		ID:               bson.NewObjectID(),
		UserID:           bson.NewObjectID(),
		TargetDepartment: target,
		Questions:        questions,
	}
}

func TestComputeStatsEmptyDepartmentYieldsZeros(t *testing.T) {
	stats := core.ComputeStats(nil, []models.Department{models.DeptIT})

	require.Len(t, stats, 1)
	require.Equal(t, models.DeptIT, stats[0].Department)
	require.Equal(t, 0.0, stats[0].AverageRating)
	require.Equal(t, 0, stats[0].TotalFeedbacks)
	require.Empty(t, stats[0].QuestionStats)
	require.NotNil(t, stats[0].QuestionStats)
}

func TestComputeStatsPerQuestionAverage(t *testing.T) {
	all := []models.Feedback{
		feedbackFor(models.DeptIT, map[string]int{"q1": 4}),
		feedbackFor(models.DeptIT, map[string]int{"q1": 2}),
	}

	stats := core.ComputeStats(all, []models.Department{models.DeptIT})

	require.Len(t, stats, 1)
	require.Equal(t, 2, stats[0].TotalFeedbacks)
	require.Len(t, stats[0].QuestionStats, 1)
	require.Equal(t, "q1", stats[0].QuestionStats[0].QuestionID)
	require.Equal(t, 3.0, stats[0].QuestionStats[0].AverageRating)
}

func TestComputeStatsFlatMeanOverAllRatings(t *testing.T) {
	// One submission answers a single question with 5, the other
	// answers three questions with 1 each. The flat mean weights the
	// larger submission more: (5+1+1+1)/4 = 2.0, not (5+1)/2 = 3.0.
	all := []models.Feedback{
		feedbackFor(models.DeptHR, map[string]int{"q1": 5}),
		feedbackFor(models.DeptHR, map[string]int{"q1": 1, "q2": 1, "q3": 1}),
	}

	stats := core.ComputeStats(all, []models.Department{models.DeptHR})

	require.Len(t, stats, 1)
	require.Equal(t, 2.0, stats[0].AverageRating)
}

func TestComputeStatsOrderIndependent(t *testing.T) {
	a := feedbackFor(models.DeptIT, map[string]int{"q1": 5, "q2": 3})
	b := feedbackFor(models.DeptIT, map[string]int{"q1": 1})
	c := feedbackFor(models.DeptIT, map[string]int{"q2": 4})

	forward := core.ComputeStats([]models.Feedback{a, b, c}, []models.Department{models.DeptIT})
	reversed := core.ComputeStats([]models.Feedback{c, b, a}, []models.Department{models.DeptIT})

	require.Equal(t, forward[0].AverageRating, reversed[0].AverageRating)
	require.Equal(t, forward[0].TotalFeedbacks, reversed[0].TotalFeedbacks)

	// questionStats keep first-seen order, so compare as sets.
	toMap := func(qs []models.QuestionStats) map[string]float64 {
		m := make(map[string]float64, len(qs))
		for _, q := range qs {
			m[q.QuestionID] = q.AverageRating
		}
		return m
	}
	require.Equal(t, toMap(forward[0].QuestionStats), toMap(reversed[0].QuestionStats))
}

func TestComputeStatsIgnoresOtherDepartments(t *testing.T) {
	all := []models.Feedback{
		feedbackFor(models.DeptIT, map[string]int{"q1": 5}),
		feedbackFor(models.DeptHR, map[string]int{"q1": 1}),
	}

	stats := core.ComputeStats(all, []models.Department{models.DeptIT})

	require.Len(t, stats, 1)
	require.Equal(t, 5.0, stats[0].AverageRating)
	require.Equal(t, 1, stats[0].TotalFeedbacks)
}

func TestComputeStatsDeclaredDepartmentOrder(t *testing.T) {
	// Requested out of order; results follow the declared enumeration.
	stats := core.ComputeStats(nil, []models.Department{
		models.DeptSafety, models.DeptIT, models.DeptHR,
	})

	require.Len(t, stats, 3)
	require.Equal(t, models.DeptIT, stats[0].Department)
	require.Equal(t, models.DeptHR, stats[1].Department)
	require.Equal(t, models.DeptSafety, stats[2].Department)
}

func TestComputeStatsAllDepartments(t *testing.T) {
	all := []models.Feedback{
		feedbackFor(models.DeptIT, map[string]int{"q1": 4, "q2": 2}),
	}

	stats := core.ComputeStats(all, models.Departments)

	require.Len(t, stats, len(models.Departments))
	withFeedback := 0
	for _, s := range stats {
		if s.TotalFeedbacks > 0 {
			withFeedback++
			require.Equal(t, 3.0, s.AverageRating)
		} else {
			require.Equal(t, 0.0, s.AverageRating)
		}
	}
	require.Equal(t, 1, withFeedback)
}
