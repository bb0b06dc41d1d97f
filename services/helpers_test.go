package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr_payroll/models"
	"hr_payroll/repository"
	"hr_payroll/services"
)

var kst = time.FixedZone("KST", 9*60*60)

func newTestRepo(t *testing.T) *repository.Repository {
	t.Helper()

	db, err := repository.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return repository.New(db)
}

func newAttendanceService(repo *repository.Repository) *services.AttendanceService {
	return services.NewAttendanceService(repo, repo, services.AttendancePolicy{
		Location:       kst,
		LateAfter:      9 * time.Hour,
		FullDayMinutes: 480,
	})
}

func newPayrollService(repo *repository.Repository) *services.PayrollService {
	return services.NewPayrollService(repo, repo, repo, services.NewLegacyCodec("test-encryption-secret"))
}

func createMember(t *testing.T, repo *repository.Repository, name string) models.Member {
	t.Helper()

	now := time.Now()
	m := models.Member{
		ID:        uuid.NewString(),
		Username:  name,
		FullName:  name,
		Email:     name + "@company.com",
		Role:      "employee",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateMember(context.Background(), &m))
	return m
}

func at(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, kst)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}
