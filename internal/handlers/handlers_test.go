package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kalvihub/internal/account"
	"kalvihub/internal/attempts"
	"kalvihub/internal/config"
	"kalvihub/internal/mail"
	"kalvihub/internal/middleware"
	"kalvihub/internal/platform/auth"
	"kalvihub/internal/platform/progress"
	"kalvihub/internal/sessions"
)

func newTestApp() *fiber.App {
	config.Validate = validator.New()

	cfg := &config.Config{AdminAPIKey: "test-admin-key"}

	store := account.NewMemoryStore()
	locks := account.NewLocker()
	authService := auth.NewService(store, attempts.NewMemoryLedger(), mail.NoopDispatcher{}, locks)
	progressService := progress.NewService(store, sessions.NewMemoryLog(), locks)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("auth", authService)
		c.Locals("progress", progressService)
		return c.Next()
	})

	api := app.Group("/api")
	api.Get("/subjects", GetSubjects)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", Register)
	authGroup.Post("/signin", SigninWithPassword)
	authGroup.Post("/verify", VerifyEmail)
	authGroup.Post("/forgot-password", ForgotPassword)
	authGroup.Post("/reset-password", ResetPassword)

	progressGroup := api.Group("/progress")
	progressGroup.Post("/", RecordActivity)
	progressGroup.Get("/:user_id", GetProgress)
	progressGroup.Get("/:user_id/sessions", GetStudySessions)

	admin := api.Group("/admin", middleware.AdminMiddleware)
	admin.Get("/login-attempts", GetLoginAttempts)
	admin.Get("/stats", GetUserStats)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
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
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}

	return resp, decoded
}

func registerInput() map[string]any {
	return map[string]any{
		"name":     "Asha",
		"email":    "asha@x.com",
		"password": "Abcd1234",
		"grade":    "10",
		"school":   "SchoolX",
	}
}

func TestRegisterVerifySigninFlow(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, "POST", "/api/auth/register", registerInput(), nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	token := body["verification_token"].(string)
	require.NotEmpty(t, token)
	user := body["user"].(map[string]any)
	userID := user["id"].(string)

	// Signin before verification is rejected with 401.
	resp, _ = doJSON(t, app, "POST", "/api/auth/signin", map[string]any{
		"email": "asha@x.com", "password": "Abcd1234",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/auth/verify", map[string]any{"token": token}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", "/api/auth/signin", map[string]any{
		"email": "asha@x.com", "password": "Abcd1234",
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]any)
	assert.Equal(t, float64(1), user["streak_length"])

	// Duplicate registration maps to 400.
	resp, _ = doJSON(t, app, "POST", "/api/auth/register", registerInput(), nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Record an assessment and read the progress back.
	resp, body = doJSON(t, app, "POST", "/api/progress/", map[string]any{
		"user_id":  userID,
		"subject":  "mathematics",
		"activity": "assessment",
		"data": map[string]any{
			"assessment_completed": true,
			"score":                95,
			"duration":             30,
		},
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]any)
	mathematics := user["progress"].(map[string]any)["mathematics"].(map[string]any)
	assert.Equal(t, float64(1), mathematics["percentage"])

	resp, body = doJSON(t, app, "GET", "/api/progress/"+userID, nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user = body["user"].(map[string]any)
	assert.Contains(t, user["achievements"], "assessment_master")

	resp, body = doJSON(t, app, "GET", "/api/progress/"+userID+"/sessions", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["sessions"], 1)
}

func TestStatusMapping(t *testing.T) {
	app := newTestApp()

	// Unknown user on progress lookup is 404.
	resp, _ := doJSON(t, app, "GET", "/api/progress/missing", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Unknown credentials are 401 without existence leak.
	resp, body := doJSON(t, app, "POST", "/api/auth/signin", map[string]any{
		"email": "nobody@x.com", "password": "Abcd1234",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid email or password", body["message"])

	// Malformed registration input is 400 with a reason.
	input := registerInput()
	input["password"] = "short"
	resp, _ = doJSON(t, app, "POST", "/api/auth/register", input, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown verification token is 400.
	resp, _ = doJSON(t, app, "POST", "/api/auth/verify", map[string]any{"token": "nope"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Forgot-password reports success even for unknown accounts.
	resp, body = doJSON(t, app, "POST", "/api/auth/forgot-password", map[string]any{"email": "nobody@x.com"}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "reset_token")
}

func TestAdminEndpointsRequireKey(t *testing.T) {
	app := newTestApp()

	resp, _ := doJSON(t, app, "GET", "/api/admin/stats", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/admin/stats", nil, map[string]string{
		"X-API-Key": "test-admin-key",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total_users"])

	resp, _ = doJSON(t, app, "GET", "/api/admin/login-attempts", nil, map[string]string{
		"X-API-Key": "test-admin-key",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSubjectsEndpoint(t *testing.T) {
	app := newTestApp()

	resp, body := doJSON(t, app, "GET", "/api/subjects", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["subjects"], 5)

	resp, _ = doJSON(t, app, "GET", "/api/subjects?grade=11", nil, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
