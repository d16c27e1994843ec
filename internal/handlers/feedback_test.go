package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pulse-backend/internal/handlers"
	"pulse-backend/internal/middleware"
	"pulse-backend/internal/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// --- Mocks ---

type mockUserStore struct {
	user *models.User
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockUserStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, nil
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	user.ID = bson.NewObjectID()
	m.user = user
	return nil
}

type mockPeriodStore struct {
	period *models.FeedbackPeriod
	active []models.FeedbackPeriod
}

func (m *mockPeriodStore) Create(ctx context.Context, period *models.FeedbackPeriod) error {
	period.ID = bson.NewObjectID()
	m.period = period
	return nil
}

func (m *mockPeriodStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.FeedbackPeriod, error) {
	if m.period != nil && m.period.ID == id {
		return m.period, nil
	}
	return nil, nil
}

func (m *mockPeriodStore) FindActive(ctx context.Context, endingAfter time.Time) ([]models.FeedbackPeriod, error) {
	return m.active, nil
}

func (m *mockPeriodStore) FindAll(ctx context.Context) ([]models.FeedbackPeriod, error) {
	return m.active, nil
}

func (m *mockPeriodStore) SetActive(ctx context.Context, id bson.ObjectID, active bool) error {
	return nil
}

func (m *mockPeriodStore) Delete(ctx context.Context, id bson.ObjectID) error {
	return nil
}

type mockFeedbackStore struct {
	existing *models.Feedback
	byUser   []models.Feedback
	created  *models.Feedback
}

func (m *mockFeedbackStore) Create(ctx context.Context, feedback *models.Feedback) error {
	feedback.ID = bson.NewObjectID()
	feedback.CreatedAt = time.Now()
	m.created = feedback
	return nil
}

func (m *mockFeedbackStore) FindByUserAndTarget(ctx context.Context, userID bson.ObjectID, target models.Department) (*models.Feedback, error) {
	return m.existing, nil
}

func (m *mockFeedbackStore) FindByUser(ctx context.Context, userID bson.ObjectID) ([]models.Feedback, error) {
	return m.byUser, nil
}

func (m *mockFeedbackStore) FindAll(ctx context.Context) ([]models.Feedback, error) {
	return m.byUser, nil
}

func (m *mockFeedbackStore) FindByTargetDepartment(ctx context.Context, target models.Department) ([]models.Feedback, error) {
	return m.byUser, nil
}

type mockNotifier struct{}

func (m *mockNotifier) Publish(ctx context.Context, message string) error { return nil }

// --- Fixtures ---

func fixtureUser(dept models.Department) *models.User {
	return &models.User{
		ID:         bson.NewObjectID(),
		Name:       "Asha Verma",
		Email:      "asha@example.com",
		Department: dept,
	}
}

func fixturePeriod(dept models.Department) *models.FeedbackPeriod {
	return &models.FeedbackPeriod{
		ID:         bson.NewObjectID(),
		Department: dept,
		StartDate:  time.Now().Add(-24 * time.Hour),
		EndDate:    time.Now().Add(24 * time.Hour),
		Active:     true,
		Questions: []models.Question{
			{ID: "q1", Text: "How satisfied are you with HR response times?", Department: dept},
		},
	}
}

func authedRequest(method, target string, body []byte, user *models.User) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := middleware.WithSession(req.Context(), user.ID.Hex(), user.Email, string(user.Department), user.IsAdmin)
	return req.WithContext(ctx)
}

// --- Tests ---

func TestSubmitFeedbackSuccess(t *testing.T) {
	user := fixtureUser(models.DeptIT)
	period := fixturePeriod(models.DeptHR)

	feedbackStore := &mockFeedbackStore{}
	h := handlers.NewFeedbackHandler(feedbackStore, &mockPeriodStore{period: period}, &mockUserStore{user: user}, &mockNotifier{})

	body, _ := json.Marshal(map[string]interface{}{
		"period_id": period.ID.Hex(),
		"answers": map[string]interface{}{
			"q1": map[string]interface{}{"rating": 2, "comment": "slow response"},
		},
	})

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, authedRequest(http.MethodPost, "/feedback", body, user))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, feedbackStore.created)
	require.Equal(t, models.DeptHR, feedbackStore.created.TargetDepartment)
	require.Equal(t, models.DeptIT, feedbackStore.created.UserDepartment)
	require.Len(t, feedbackStore.created.Questions, 1)
	require.Equal(t, "q1", feedbackStore.created.Questions[0].ID)
	require.Equal(t, 2, feedbackStore.created.Questions[0].Rating)
	require.Equal(t, "slow response", feedbackStore.created.Questions[0].Comment)
}

func TestSubmitFeedbackSelfRatingForbidden(t *testing.T) {
	user := fixtureUser(models.DeptHR)
	period := fixturePeriod(models.DeptHR)

	h := handlers.NewFeedbackHandler(&mockFeedbackStore{}, &mockPeriodStore{period: period}, &mockUserStore{user: user}, &mockNotifier{})

	body, _ := json.Marshal(map[string]interface{}{
		"period_id": period.ID.Hex(),
		"answers": map[string]interface{}{
			"q1": map[string]interface{}{"rating": 4},
		},
	})

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, authedRequest(http.MethodPost, "/feedback", body, user))

	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "self_rating_forbidden", resp["code"])
}

func TestSubmitFeedbackDuplicateRejected(t *testing.T) {
	user := fixtureUser(models.DeptIT)
	period := fixturePeriod(models.DeptHR)

	feedbackStore := &mockFeedbackStore{
		existing: &models.Feedback{UserID: user.ID, TargetDepartment: models.DeptHR},
	}
	h := handlers.NewFeedbackHandler(feedbackStore, &mockPeriodStore{period: period}, &mockUserStore{user: user}, &mockNotifier{})

	body, _ := json.Marshal(map[string]interface{}{
		"period_id": period.ID.Hex(),
		"answers": map[string]interface{}{
			"q1": map[string]interface{}{"rating": 4},
		},
	})

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, authedRequest(http.MethodPost, "/feedback", body, user))

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Nil(t, feedbackStore.created)
}

func TestSubmitFeedbackMissingJustification(t *testing.T) {
	user := fixtureUser(models.DeptIT)
	period := fixturePeriod(models.DeptHR)

	h := handlers.NewFeedbackHandler(&mockFeedbackStore{}, &mockPeriodStore{period: period}, &mockUserStore{user: user}, &mockNotifier{})

	body, _ := json.Marshal(map[string]interface{}{
		"period_id": period.ID.Hex(),
		"answers": map[string]interface{}{
			"q1": map[string]interface{}{"rating": 2, "comment": ""},
		},
	})

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, authedRequest(http.MethodPost, "/feedback", body, user))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "missing_justification", resp["code"])
	require.Equal(t, "q1", resp["question_id"])
}

func TestListEligiblePeriodsFiltersSubmitted(t *testing.T) {
	user := fixtureUser(models.DeptIT)
	hr := fixturePeriod(models.DeptHR)
	accounts := fixturePeriod(models.DeptAccounts)

	periodStore := &mockPeriodStore{active: []models.FeedbackPeriod{*hr, *accounts}}
	feedbackStore := &mockFeedbackStore{
		byUser: []models.Feedback{{UserID: user.ID, TargetDepartment: models.DeptHR}},
	}
	h := handlers.NewFeedbackHandler(feedbackStore, periodStore, &mockUserStore{user: user}, &mockNotifier{})

	rec := httptest.NewRecorder()
	h.ListEligiblePeriods(rec, authedRequest(http.MethodGet, "/periods", nil, user))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Periods              []models.FeedbackPeriod `json:"periods"`
		SubmittedDepartments []models.Department     `json:"submitted_departments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Periods, 1)
	require.Equal(t, models.DeptAccounts, resp.Periods[0].Department)
	require.Equal(t, []models.Department{models.DeptHR}, resp.SubmittedDepartments)
}
