package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"eventhire/internal/adapters/http/middleware"
	"eventhire/internal/adapters/http/routes"
	"eventhire/internal/adapters/persistence/models"
	"eventhire/internal/adapters/persistence/repositories"
	"eventhire/internal/config"
	"eventhire/internal/core/services"
	"eventhire/internal/pkg/jwt"
	"eventhire/internal/pkg/password"
	"eventhire/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "test-secret"

func TestMain(m *testing.M) {
	password.SetCost(bcrypt.MinCost)
	os.Exit(m.Run())
}

type recordingNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (n *recordingNotifier) NotifyJobRejected(_ context.Context, _, _, reason string) services.NotifyResult {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reasons = append(n.reasons, reason)
	return services.NotifyResult{Success: true}
}

type testEnv struct {
	app      *fiber.App
	store    repositories.Store
	notifier *recordingNotifier

	adminToken   string
	companyToken string
	company      *models.CompanyProfile
	seekerToken  string
	seeker       *models.SeekerProfile
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           secret,
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Moderation: config.ModerationConfig{RedFlagThreshold: 3, BanDays: 30},
	}

	env := &testEnv{
		app:      fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler}),
		store:    repositories.NewStore(testutil.NewDB(t)),
		notifier: &recordingNotifier{},
	}
	routes.Setup(env.app, routes.Dependencies{
		Store:    env.store,
		Config:   cfg,
		Notifier: env.notifier,
	})

	ctx := context.Background()

	admin := &models.User{Email: "admin@eventhire.test", Password: "x", Role: "ADMIN", IsActive: true}
	require.NoError(t, env.store.Users().Create(ctx, admin))
	env.adminToken = token(t, admin, "")

	companyUser := &models.User{Email: "events@acme.test", Password: "x", Role: "COMPANY", IsActive: true}
	require.NoError(t, env.store.Users().Create(ctx, companyUser))
	env.company = &models.CompanyProfile{UserID: companyUser.ID, CompanyName: "Acme Events", Email: "ops@acme.test"}
	require.NoError(t, env.store.Companies().Create(ctx, env.company))
	env.companyToken = token(t, companyUser, env.company.ID)

	seekerUser := &models.User{Email: "riya@seeker.test", Password: "x", Role: "SEEKER", IsActive: true}
	require.NoError(t, env.store.Users().Create(ctx, seekerUser))
	env.seeker = &models.SeekerProfile{UserID: seekerUser.ID, FullName: "Riya", Email: seekerUser.Email}
	require.NoError(t, env.store.Seekers().Create(ctx, env.seeker))
	env.seekerToken = token(t, seekerUser, env.seeker.ID)

	return env
}

func token(t *testing.T, user *models.User, profileID string) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken(user.ID, user.Email, user.Role, profileID, secret, 15)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (e *testEnv) submitRequest(t *testing.T, title string) string {
	t.Helper()

	status, body := e.do(t, http.MethodPost, "/api/v1/job-requests", e.companyToken, map[string]interface{}{
		"title":          title,
		"event_type":     "Wedding",
		"location":       "Pune",
		"start_date":     "2025-05-01",
		"end_date":       "2025-05-02",
		"helpers_needed": 6,
		"payment":        "₹3500",
		"contact_phone":  "9876543210",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return body["data"].(map[string]interface{})["id"].(string)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["checks"].(map[string]interface{})["database"])
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/job-requests", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, false, body["success"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/job-requests", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/job-requests", env.seekerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/job-requests", env.adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestApproveJobRequest(t *testing.T) {
	env := newTestEnv(t)
	id := env.submitRequest(t, "Wedding Helpers")

	status, body := env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/approve", env.adminToken, map[string]interface{}{
		"finalTitle":   "Wedding Serving Staff",
		"finalPayment": "₹4000",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["success"])

	job := body["job"].(map[string]interface{})
	assert.Equal(t, "Wedding Serving Staff", job["title"])
	assert.Equal(t, "₹4000", job["payment"])
	assert.Equal(t, env.company.ID, job["company_id"])

	status, body = env.do(t, http.MethodGet, "/api/v1/job-requests/"+id, env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	request := body["data"].(map[string]interface{})
	assert.Equal(t, "approved", request["status"])
	assert.Equal(t, job["id"], request["approved_job_id"])

	status, _ = env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/approve", env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = env.do(t, http.MethodGet, "/api/v1/jobs", "", nil)
	require.Equal(t, http.StatusOK, status)
	jobs := body["data"].(map[string]interface{})["jobs"].([]interface{})
	assert.Len(t, jobs, 1)
}

func TestRejectJobRequest(t *testing.T) {
	env := newTestEnv(t)
	id := env.submitRequest(t, "Stage Crew")

	status, body := env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/reject", env.adminToken, map[string]interface{}{
		"rejectionReason": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "rejectionReason is required", body["error"])

	status, body = env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/reject", env.adminToken, map[string]interface{}{
		"rejectionReason": "Payment below minimum",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, map[string]interface{}{"success": true}, body)
	assert.Equal(t, []string{"Payment below minimum"}, env.notifier.reasons)

	status, _ = env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/approve", env.adminToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/job-requests/missing/reject", env.adminToken, map[string]interface{}{
		"rejectionReason": "x",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRedFlagsBanSeeker(t *testing.T) {
	env := newTestEnv(t)
	id := env.submitRequest(t, "Ushers")

	_, body := env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/approve", env.adminToken, nil)
	jobID := body["job"].(map[string]interface{})["id"].(string)

	for i := 0; i < 3; i++ {
		status, body := env.do(t, http.MethodPost, "/api/v1/red-flags", env.companyToken, map[string]interface{}{
			"seekerId": env.seeker.ID,
			"jobId":    jobID,
			"jobTitle": "Ushers",
			"reason":   "No show",
		})
		require.Equal(t, http.StatusOK, status, body)
		assert.Equal(t, env.seeker.ID, body["redFlag"].(map[string]interface{})["seeker_id"])
	}

	status, body := env.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/apply", env.seekerToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.True(t, strings.HasPrefix(body["error"].(string), "you are banned until "), body["error"])

	status, body = env.do(t, http.MethodGet, "/api/v1/seekers/"+env.seeker.ID+"/stats", env.companyToken, nil)
	require.Equal(t, http.StatusOK, status)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["redFlagCount"])
	assert.Equal(t, true, stats["isBanned"])
	assert.Equal(t, "0", stats["avgRating"])

	status, body = env.do(t, http.MethodGet, "/api/v1/seekers/"+env.seeker.ID+"/ban", env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["banned"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/bans", env.companyToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRedFlagValidation(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/red-flags", env.adminToken, map[string]interface{}{
		"seekerId": env.seeker.ID,
		"jobId":    "job-1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "reason is required", body["error"])

	status, _ = env.do(t, http.MethodPost, "/api/v1/red-flags", env.adminToken, map[string]interface{}{
		"seekerId": "nobody",
		"jobId":    "job-1",
		"reason":   "No show",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/red-flags", env.seekerToken, map[string]interface{}{
		"seekerId": env.seeker.ID,
		"jobId":    "job-1",
		"reason":   "No show",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestApplyTwice(t *testing.T) {
	env := newTestEnv(t)
	id := env.submitRequest(t, "Caterers")

	_, body := env.do(t, http.MethodPost, "/api/v1/job-requests/"+id+"/approve", env.adminToken, nil)
	jobID := body["job"].(map[string]interface{})["id"].(string)

	status, _ := env.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/apply", env.seekerToken, nil)
	assert.Equal(t, http.StatusCreated, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/apply", env.seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "you have already applied for this job", body["error"])

	status, body = env.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/applications", env.companyToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _ = env.do(t, http.MethodPut, "/api/v1/jobs/"+jobID+"/archive", env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/jobs/"+jobID+"/apply", env.seekerToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "job is no longer accepting applications", body["error"])
}

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/auth/register/seeker", "", map[string]interface{}{
		"email":     "Arjun@Example.com",
		"password":  "supersecret",
		"full_name": "Arjun",
	})
	require.Equal(t, http.StatusCreated, status, body)

	status, _ = env.do(t, http.MethodPost, "/api/v1/auth/register/seeker", "", map[string]interface{}{
		"email":     "arjun@example.com",
		"password":  "supersecret",
		"full_name": "Arjun",
	})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "arjun@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "arjun@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, status, body)
	access := body["data"].(map[string]interface{})["access_token"].(string)

	status, body = env.do(t, http.MethodGet, "/api/v1/auth/me", access, nil)
	require.Equal(t, http.StatusOK, status)
	user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "arjun@example.com", user["email"])
	assert.Equal(t, "SEEKER", user["role"])
	assert.Equal(t, "Arjun", user["name"])
	assert.NotEmpty(t, user["profile_id"])
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.submitRequest(t, "Valets")

	status, body := env.do(t, http.MethodGet, "/api/v1/dashboard", env.adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["pending_requests"])
	assert.Equal(t, float64(1), data["total_seekers"])
	assert.Equal(t, float64(1), data["total_companies"])

	status, _ = env.do(t, http.MethodGet, "/api/v1/dashboard", env.companyToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
