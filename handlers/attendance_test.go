package handlers_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr_payroll/types"
)

func TestCheckInFlow(t *testing.T) {
	env := setupTest(t, time.Date(2026, 10, 15, 9, 10, 0, 0, kst))
	member := env.createMember(t, "alice", "employee")
	token := createTestToken(t, member.ID, "employee")

	status, resp := env.call(t, "POST", "/api/attendance/check-in", token, map[string]string{"memo": "office"})
	assert.Equal(t, 201, status)
	assert.True(t, resp.Success)
	data := dataMap(t, resp)
	assert.Equal(t, "LATE", data["status"])
	assert.Equal(t, "2026-10-15", data["work_date"])
	t.Logf("Check-in response: %+v", data)

	status, resp = env.call(t, "POST", "/api/attendance/check-in", token, nil)
	assert.Equal(t, 409, status)
	assert.False(t, resp.Success)
	assert.Equal(t, types.CodeAlreadyCheckedIn, resp.Code)

	status, resp = env.call(t, "GET", "/api/attendance/today", token, nil)
	assert.Equal(t, 200, status)
	assert.Equal(t, member.ID, dataMap(t, resp)["user_id"])
}

func TestCheckOutFlow(t *testing.T) {
	env := setupTest(t, time.Date(2026, 10, 15, 8, 30, 0, 0, kst))
	member := env.createMember(t, "alice", "employee")
	token := createTestToken(t, member.ID, "employee")

	status, resp := env.call(t, "POST", "/api/attendance/check-out", token, nil)
	assert.Equal(t, 422, status)
	assert.Equal(t, types.CodeNoCheckInRecord, resp.Code)

	status, _ = env.call(t, "POST", "/api/attendance/check-in", token, nil)
	require.Equal(t, 201, status)

	setupClock(t, time.Date(2026, 10, 15, 16, 0, 0, 0, kst))
	status, resp = env.call(t, "POST", "/api/attendance/check-out", token, nil)
	assert.Equal(t, 200, status)
	data := dataMap(t, resp)
	assert.Equal(t, "EARLY_LEAVE", data["status"])
	assert.EqualValues(t, 450, data["worked_minutes"])

	status, resp = env.call(t, "POST", "/api/attendance/check-out", token, nil)
	assert.Equal(t, 409, status)
	assert.Equal(t, types.CodeAlreadyCheckedOut, resp.Code)

	status, resp = env.call(t, "GET", "/api/attendance/monthly/hours?year=2026&month=10", token, nil)
	assert.Equal(t, 200, status)
	hours := dataMap(t, resp)
	assert.EqualValues(t, 450, hours["total_minutes"])
	assert.Equal(t, "7:30", hours["total_hours"])

	status, resp = env.call(t, "GET", "/api/attendance/monthly?year=2026&month=10", token, nil)
	assert.Equal(t, 200, status)
	assert.Len(t, resp.Data, 1)

	status, resp = env.call(t, "GET", "/api/attendance/monthly/hours?year=2026", token, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, types.CodeInvalidInput, resp.Code)

	status, resp = env.call(t, "GET", "/api/attendance/monthly/hours?year=2026&month=13", token, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, types.CodeInvalidInput, resp.Code)
}

func TestDailyRosterEndpoint(t *testing.T) {
	env := setupTest(t, time.Date(2026, 10, 15, 8, 55, 0, 0, kst))
	hr := env.createMember(t, "hana", "hr_manager")
	worker := env.createMember(t, "alice", "employee")
	env.createMember(t, "bob", "employee")

	status, _ := env.call(t, "POST", "/api/attendance/check-in", createTestToken(t, worker.ID, "employee"), nil)
	require.Equal(t, 201, status)

	hrToken := createTestToken(t, hr.ID, "hr_manager")
	status, resp := env.call(t, "GET", "/api/admin/attendance/roster?date=2026-10-15", hrToken, nil)
	assert.Equal(t, 200, status)
	roster := dataMap(t, resp)
	assert.Equal(t, "2026-10-15", roster["date"])
	stats := roster["statistics"].(map[string]interface{})
	assert.EqualValues(t, 3, stats["total"])
	assert.EqualValues(t, 1, stats["attended"])
	assert.EqualValues(t, 2, stats["absent"])
	assert.EqualValues(t, 1, stats["normal"])
	assert.Len(t, roster["employees"], 3)

	status, resp = env.call(t, "GET", "/api/admin/attendance/roster?date=15-10-2026", hrToken, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, types.CodeInvalidInput, resp.Code)

	status, resp = env.call(t, "GET", "/api/admin/attendance/member/"+worker.ID, hrToken, nil)
	assert.Equal(t, 200, status)
	records := resp.Data.([]interface{})
	require.Len(t, records, 1)
	id := records[0].(map[string]interface{})["id"].(string)

	status, _ = env.call(t, "DELETE", "/api/admin/attendance/"+id, hrToken, nil)
	assert.Equal(t, 200, status)
	status, resp = env.call(t, "DELETE", "/api/admin/attendance/"+id, hrToken, nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, types.CodeNotFound, resp.Code)
}

func TestAttendanceRequiresAuth(t *testing.T) {
	env := setupTest(t, time.Date(2026, 10, 15, 9, 0, 0, 0, kst))
	member := env.createMember(t, "alice", "employee")

	status, resp := env.call(t, "POST", "/api/attendance/check-in", "", nil)
	assert.Equal(t, 401, status)
	assert.False(t, resp.Success)

	status, _ = env.call(t, "POST", "/api/attendance/check-in", "not-a-jwt", nil)
	assert.Equal(t, 401, status)

	status, _ = env.call(t, "GET", "/api/admin/attendance/roster", createTestToken(t, member.ID, "employee"), nil)
	assert.Equal(t, 403, status)
}
