package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"hr_payroll/config"
	"hr_payroll/handlers"
	"hr_payroll/models"
	"hr_payroll/repository"
	"hr_payroll/services"
	"hr_payroll/types"
)

const testJWTSecret = "handler-test-jwt-secret"

var kst = time.FixedZone("KST", 9*60*60)

type testEnv struct {
	app  *fiber.App
	repo *repository.Repository
}

// setupTest wires fresh services over an in-memory database and pins the
// handler clock to now.
func setupTest(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	config.AppConfig.JWTSecret = testJWTSecret

	db, err := repository.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	repo := repository.New(db)

	attendance := services.NewAttendanceService(repo, repo, services.AttendancePolicy{
		Location:       kst,
		LateAfter:      9 * time.Hour,
		FullDayMinutes: 480,
	})
	payroll := services.NewPayrollService(repo, repo, repo, services.NewLegacyCodec("handler-test-encryption"))
	handlers.InitHandlers(attendance, payroll)

	previous := handlers.Now
	handlers.Now = func() time.Time { return now }
	t.Cleanup(func() { handlers.Now = previous })

	app := fiber.New()
	handlers.SetupRoutes(app)
	return &testEnv{app: app, repo: repo}
}

func (e *testEnv) createMember(t *testing.T, name, role string) models.Member {
	t.Helper()

	m := models.Member{
		ID:        uuid.New().String(),
		Username:  name,
		FullName:  name,
		Email:     name + "@company.com",
		Role:      role,
		Status:    "active",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, e.repo.CreateMember(context.Background(), &m))
	return m
}

func createTestToken(t *testing.T, userID, role string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

// call sends a request as the given token and decodes the response envelope.
func (e *testEnv) call(t *testing.T, method, path, token string, body interface{}) (int, types.APIResponse) {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func dataMap(t *testing.T, resp types.APIResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data is %T", resp.Data)
	return data
}

func setupClock(t *testing.T, now time.Time) {
	t.Helper()
	handlers.Now = func() time.Time { return now }
}
