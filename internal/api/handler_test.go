package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/ripasso/internal/repository"
	"github.com/alexanderramin/ripasso/internal/service"
	"github.com/alexanderramin/ripasso/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	clock := testutil.FixedClock(testutil.TestNow)
	profiles := repository.NewSQLiteProfileRepo(database)

	h := NewHandler(
		service.NewPlanService(repository.NewSQLitePlanRepo(database), uow, clock),
		service.NewSimulationService(repository.NewSQLiteSimulationRepo(database), profiles, uow, clock),
		service.NewProfileService(profiles),
		nil,
	)
	return NewRouter(h, []string{testOrigin})
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const planBody = `{"exam_date": "2025-03-25", "daily_minutes": 120, "target_grade": 27, "topics": ["Contratti", "Obbligazioni"]}`

func createPlan(t *testing.T, router http.Handler) planView {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/v1/plans", planBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[planView](t, rec)
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPlans_CreateGetList(t *testing.T) {
	router := newTestRouter(t)
	plan := createPlan(t, router)

	assert.Equal(t, 10, plan.TotalDays)
	assert.Equal(t, "2025-03-25", plan.ExamDate)
	require.Len(t, plan.Days, 10)
	assert.Equal(t, "2025-03-15", plan.Days[0].Date)
	assert.Equal(t, "foundation", plan.Days[0].Phase)
	assert.Equal(t, "mock-exam", plan.Days[9].Tasks[0].Activity)

	rec := do(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, plan, decode[planView](t, rec))

	rec = do(t, router, http.MethodGet, "/api/v1/plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]planSummaryView](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, plan.ID, list[0].ID)
}

func TestPlans_CreateIsIdempotent(t *testing.T) {
	router := newTestRouter(t)
	first := createPlan(t, router)
	second := createPlan(t, router)
	assert.Equal(t, first.ID, second.ID)
}

func TestPlans_CreateRejectsInvalidFile(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/plans",
		`{"exam_date": "25/03/2025", "materials": [{"name": "Pergamena", "kind": "scroll"}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[struct {
		Error    string   `json:"error"`
		Problems []string `json:"problems"`
	}](t, rec)
	assert.Equal(t, "validation failed", body.Error)
	assert.Len(t, body.Problems, 2)

	rec = do(t, router, http.MethodPost, "/api/v1/plans", `{"exam_date": "2025-03-25", "surprise": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/plans", `{"exam_date": "2025-03-25", "profile_name": "ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlans_CreateWithStoredProfile(t *testing.T) {
	router := newTestRouter(t)
	rec := do(t, router, http.MethodPut, "/api/v1/profiles/orale", `{"oral_weight": 100, "written_weight": 0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/plans",
		`{"exam_date": "2025-03-25", "topics": ["Contratti"], "profile_name": "orale"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestPlans_ToggleTask(t *testing.T) {
	router := newTestRouter(t)
	plan := createPlan(t, router)
	day := plan.Days[9]

	path := "/api/v1/plans/" + plan.ID + "/days/" + day.ID + "/tasks/" + day.Tasks[0].ID + "/toggle"
	rec := do(t, router, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decode[planView](t, rec)
	assert.True(t, updated.Days[9].Completed)
	assert.Equal(t, 10, updated.OverallProgress)
	require.NotNil(t, updated.Days[9].CompletedAt)

	rec = do(t, router, http.MethodPost, "/api/v1/plans/"+plan.ID+"/days/"+day.ID+"/tasks/nope/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/v1/plans/"+plan.ID+"/days/nope/tasks/"+day.Tasks[0].ID+"/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, router, http.MethodPost, "/api/v1/plans/nope/days/"+day.ID+"/tasks/"+day.Tasks[0].ID+"/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlans_StatusAndToday(t *testing.T) {
	router := newTestRouter(t)
	plan := createPlan(t, router)

	rec := do(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID+"/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[statusView](t, rec)
	assert.Equal(t, "on_track", status.Pace.Level)
	assert.Equal(t, 10, status.Pace.DaysLeft)
	require.Len(t, status.Phases, 4)
	require.NotNil(t, status.Today)
	assert.Equal(t, plan.Days[0].ID, status.Today.ID)

	rec = do(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID+"/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, plan.Days[0], decode[dayView](t, rec))
}

func TestPlans_Delete(t *testing.T) {
	router := newTestRouter(t)
	plan := createPlan(t, router)

	rec := do(t, router, http.MethodDelete, "/api/v1/plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/v1/plans/"+plan.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulations_CreateGetScore(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/simulations", map[string]any{
		"topics":  []string{"Contratti", "Obbligazioni"},
		"profile": map[string]any{"name": "scritto", "oral_weight": 0, "written_weight": 100, "average_question_count": 6},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sim := decode[simulationView](t, rec)
	assert.Equal(t, "scritto", sim.ProfileName)
	require.Len(t, sim.Questions, 6)
	for _, q := range sim.Questions {
		assert.Empty(t, q.CorrectAnswer, "answers are hidden by default")
	}

	rec = do(t, router, http.MethodGet, "/api/v1/simulations/"+sim.ID+"?answers=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	withAnswers := decode[simulationView](t, rec)

	answers := make(map[string]string)
	for _, q := range withAnswers.Questions {
		require.NotEmpty(t, q.CorrectAnswer)
		answers[q.ID] = q.CorrectAnswer
	}
	rec = do(t, router, http.MethodPost, "/api/v1/simulations/"+sim.ID+"/score", map[string]any{"answers": answers})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	score := decode[scoreView](t, rec)
	assert.Equal(t, 30, score.Awarded)
	assert.Equal(t, 6, score.Correct)

	rec = do(t, router, http.MethodGet, "/api/v1/simulations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]simulationSummaryView](t, rec), 1)
}

func TestSimulations_Errors(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/simulations", `{"profile_name": "ghost", "topics": ["Contratti"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/simulations", `{"profile_name": "a", "profile": {}, "topics": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/simulations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/simulations/missing/score", `{"answers": {}}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulations_DefaultProfileAndDelete(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/v1/simulations", `{"topics": ["Contratti"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sim := decode[simulationView](t, rec)
	assert.Equal(t, "default", sim.ProfileName)

	rec = do(t, router, http.MethodDelete, "/api/v1/simulations/"+sim.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodDelete, "/api/v1/simulations/"+sim.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfiles_CRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/api/v1/profiles/penale", `{"difficulty_level": 5, "exercises": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[profileView](t, rec)
	assert.Equal(t, "penale", saved.Name)
	assert.Equal(t, 5, saved.DifficultyLevel)
	assert.True(t, saved.Exercises)

	rec = do(t, router, http.MethodGet, "/api/v1/profiles/penale", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, saved, decode[profileView](t, rec))

	rec = do(t, router, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]profileView](t, rec), 1)

	rec = do(t, router, http.MethodPut, "/api/v1/profiles/penale", `{"name": "civile"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, "/api/v1/profiles/penale", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, router, http.MethodGet, "/api/v1/profiles/penale", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plans", nil)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, testOrigin, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPatch, "/api/v1/plans", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
