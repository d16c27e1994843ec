package core_test

import (
	"testing"
	"time"

	"pulse-backend/internal/core"
	"pulse-backend/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func testUser(dept models.Department) models.User {
	return models.User{
		ID:         bson.NewObjectID(),
		Name:       "Test User",
		Email:      "test@example.com",
		Department: dept,
	}
}

func testPeriod(dept models.Department, endDate time.Time, active bool) models.FeedbackPeriod {
	return models.FeedbackPeriod{
		ID:         bson.NewObjectID(),
		Department: dept,
		StartDate:  endDate.Add(-7 * 24 * time.Hour),
		EndDate:    endDate,
		Active:     active,
		Questions: []models.Question{
			{ID: "q1", Text: "How responsive is the team?", Department: dept},
		},
	}
}

func TestEligiblePeriodsExcludesOwnDepartment(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	periods := []models.FeedbackPeriod{
		testPeriod(models.DeptIT, now.Add(24*time.Hour), true),
		testPeriod(models.DeptHR, now.Add(24*time.Hour), true),
	}

	eligible := core.EligiblePeriods(user, periods, nil, now)

	require.Len(t, eligible, 1)
	require.Equal(t, models.DeptHR, eligible[0].Department)
}

func TestEligiblePeriodsExcludesAlreadySubmitted(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	periods := []models.FeedbackPeriod{
		testPeriod(models.DeptHR, now.Add(24*time.Hour), true),
		testPeriod(models.DeptAccounts, now.Add(24*time.Hour), true),
	}
	submitted := []models.Feedback{
		{UserID: user.ID, TargetDepartment: models.DeptHR},
	}

	eligible := core.EligiblePeriods(user, periods, submitted, now)

	require.Len(t, eligible, 1)
	require.Equal(t, models.DeptAccounts, eligible[0].Department)
}

func TestEligiblePeriodsIgnoresOtherUsersSubmissions(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	periods := []models.FeedbackPeriod{
		testPeriod(models.DeptHR, now.Add(24*time.Hour), true),
	}
	submitted := []models.Feedback{
		{UserID: bson.NewObjectID(), TargetDepartment: models.DeptHR},
	}

	eligible := core.EligiblePeriods(user, periods, submitted, now)
	require.Len(t, eligible, 1)
}

func TestEligiblePeriodsExcludesInactiveAndExpired(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	periods := []models.FeedbackPeriod{
		testPeriod(models.DeptHR, now.Add(24*time.Hour), false),    // inactive
		testPeriod(models.DeptAccounts, now.Add(-time.Hour), true), // expired
		testPeriod(models.DeptMaterial, now, true),                 // ends exactly now
		testPeriod(models.DeptSafety, now.Add(24*time.Hour), true), // eligible
	}

	eligible := core.EligiblePeriods(user, periods, nil, now)

	require.Len(t, eligible, 1)
	require.Equal(t, models.DeptSafety, eligible[0].Department)
}

func TestEligiblePeriodsPreservesInputOrder(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	periods := []models.FeedbackPeriod{
		testPeriod(models.DeptSafety, now.Add(24*time.Hour), true),
		testPeriod(models.DeptHR, now.Add(48*time.Hour), true),
		testPeriod(models.DeptAccounts, now.Add(72*time.Hour), true),
	}

	eligible := core.EligiblePeriods(user, periods, nil, now)

	require.Len(t, eligible, 3)
	require.Equal(t, models.DeptSafety, eligible[0].Department)
	require.Equal(t, models.DeptHR, eligible[1].Department)
	require.Equal(t, models.DeptAccounts, eligible[2].Department)
}

func TestEligiblePeriodsKeepsEmptyQuestionPeriods(t *testing.T) {
	now := time.Now()
	user := testUser(models.DeptIT)

	p := testPeriod(models.DeptHR, now.Add(24*time.Hour), true)
	p.Questions = nil

	eligible := core.EligiblePeriods(user, []models.FeedbackPeriod{p}, nil, now)
	require.Len(t, eligible, 1)
}

func TestSubmittedDepartmentsDeduplicates(t *testing.T) {
	user := testUser(models.DeptIT)
	submitted := []models.Feedback{
		{UserID: user.ID, TargetDepartment: models.DeptHR},
		{UserID: user.ID, TargetDepartment: models.DeptAccounts},
		{UserID: user.ID, TargetDepartment: models.DeptHR},
		{UserID: bson.NewObjectID(), TargetDepartment: models.DeptSafety},
	}

	depts := core.SubmittedDepartments(user, submitted)
	require.Equal(t, []models.Department{models.DeptHR, models.DeptAccounts}, depts)
}
