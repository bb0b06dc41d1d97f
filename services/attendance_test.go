package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr_payroll/models"
	"hr_payroll/types"
)

func TestCheckInStatus(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		expected models.AttendanceStatus
	}{
		{name: "early", checkIn: at(2026, 10, 15, 8, 30, 0), expected: models.AttendanceNormal},
		{name: "exactly nine", checkIn: at(2026, 10, 15, 9, 0, 0), expected: models.AttendanceNormal},
		{name: "one second late", checkIn: at(2026, 10, 15, 9, 0, 1), expected: models.AttendanceLate},
		{name: "sub-second late", checkIn: at(2026, 10, 15, 9, 0, 0).Add(time.Millisecond), expected: models.AttendanceLate},
		{name: "afternoon", checkIn: at(2026, 10, 15, 13, 0, 0), expected: models.AttendanceLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			svc := newAttendanceService(repo)
			member := createMember(t, repo, "alice")

			rec, err := svc.CheckIn(context.Background(), member.ID, tt.checkIn, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rec.Status)
			assert.Equal(t, "2026-10-15", rec.WorkDate)
			assert.Nil(t, rec.CheckOutTime)
			assert.Nil(t, rec.WorkedMinutes)
		})
	}
}

func TestCheckInUsesPolicyTimezone(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")

	// 23:30 UTC on the 14th is 08:30 KST on the 15th
	rec, err := svc.CheckIn(context.Background(), member.ID, time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC), "")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-15", rec.WorkDate)
	assert.Equal(t, models.AttendanceNormal, rec.Status)
}

func TestCheckInTwiceFails(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, member.ID, at(2026, 10, 15, 8, 50, 0), "first")
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, member.ID, at(2026, 10, 15, 12, 0, 0), "again")
	assert.True(t, errors.Is(err, types.ErrAlreadyCheckedIn))

	// the next day is a new record
	_, err = svc.CheckIn(ctx, member.ID, at(2026, 10, 16, 8, 50, 0), "")
	assert.NoError(t, err)
}

func TestCheckInRequiresMember(t *testing.T) {
	svc := newAttendanceService(newTestRepo(t))
	_, err := svc.CheckIn(context.Background(), "", at(2026, 10, 15, 8, 0, 0), "")
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestConcurrentCheckInYieldsOneRecord(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CheckIn(ctx, member.ID, at(2026, 10, 15, 8, 0, i), "")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, types.ErrAlreadyCheckedIn):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	records, err := svc.History(ctx, member.ID, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCheckOut(t *testing.T) {
	tests := []struct {
		name            string
		checkIn         time.Time
		checkOut        time.Time
		expectedStatus  models.AttendanceStatus
		expectedMinutes int
	}{
		{
			name:            "full day stays normal",
			checkIn:         at(2026, 10, 15, 9, 0, 0),
			checkOut:        at(2026, 10, 15, 18, 0, 0),
			expectedStatus:  models.AttendanceNormal,
			expectedMinutes: 540,
		},
		{
			name:            "exactly eight hours",
			checkIn:         at(2026, 10, 15, 8, 0, 0),
			checkOut:        at(2026, 10, 15, 16, 0, 0),
			expectedStatus:  models.AttendanceNormal,
			expectedMinutes: 480,
		},
		{
			name:            "one minute short is early leave",
			checkIn:         at(2026, 10, 15, 8, 0, 0),
			checkOut:        at(2026, 10, 15, 15, 59, 0),
			expectedStatus:  models.AttendanceEarlyLeave,
			expectedMinutes: 479,
		},
		{
			name:            "minutes are truncated",
			checkIn:         at(2026, 10, 15, 8, 0, 0),
			checkOut:        at(2026, 10, 15, 15, 59, 59),
			expectedStatus:  models.AttendanceEarlyLeave,
			expectedMinutes: 479,
		},
		{
			name:            "late day never becomes early leave",
			checkIn:         at(2026, 10, 15, 10, 0, 0),
			checkOut:        at(2026, 10, 15, 12, 0, 0),
			expectedStatus:  models.AttendanceLate,
			expectedMinutes: 120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t)
			svc := newAttendanceService(repo)
			member := createMember(t, repo, "alice")
			ctx := context.Background()

			_, err := svc.CheckIn(ctx, member.ID, tt.checkIn, "")
			require.NoError(t, err)

			rec, err := svc.CheckOut(ctx, member.ID, tt.checkOut)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Status)
			require.NotNil(t, rec.WorkedMinutes)
			assert.Equal(t, tt.expectedMinutes, *rec.WorkedMinutes)

			stored, err := svc.TodayAttendance(ctx, member.ID, tt.checkOut)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, tt.expectedStatus, stored.Status)
			require.NotNil(t, stored.CheckOutTime)
			assert.True(t, stored.CheckOutTime.Equal(tt.checkOut))
			assert.Equal(t, tt.expectedMinutes, *stored.WorkedMinutes)
		})
	}
}

func TestCheckOutFailures(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")
	ctx := context.Background()

	_, err := svc.CheckOut(ctx, member.ID, at(2026, 10, 15, 18, 0, 0))
	assert.True(t, errors.Is(err, types.ErrNoCheckInRecord))

	_, err = svc.CheckIn(ctx, member.ID, at(2026, 10, 15, 9, 0, 0), "")
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, member.ID, at(2026, 10, 15, 8, 0, 0))
	assert.True(t, errors.Is(err, types.ErrInvalidInput), "check-out before check-in")

	_, err = svc.CheckOut(ctx, member.ID, at(2026, 10, 15, 18, 0, 0))
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, member.ID, at(2026, 10, 15, 19, 0, 0))
	assert.True(t, errors.Is(err, types.ErrAlreadyCheckedOut))

	rec, err := svc.TodayAttendance(ctx, member.ID, at(2026, 10, 15, 20, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 540, *rec.WorkedMinutes, "second check-out must not change the record")
}

func TestMonthlyWorkTotals(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")
	ctx := context.Background()

	minutes, err := svc.TotalWorkMinutes(ctx, member.ID, 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, minutes)
	hours, err := svc.TotalWorkHours(ctx, member.ID, 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, "0:00", hours)

	days := []struct {
		in, out time.Time
	}{
		{at(2026, 9, 30, 9, 0, 0), at(2026, 9, 30, 18, 0, 0)},
		{at(2026, 10, 1, 9, 0, 0), at(2026, 10, 1, 18, 0, 0)},
		{at(2026, 10, 2, 8, 55, 0), at(2026, 10, 2, 17, 0, 0)},
		{at(2026, 10, 31, 9, 0, 0), at(2026, 10, 31, 18, 5, 0)},
		{at(2026, 11, 1, 9, 0, 0), at(2026, 11, 1, 18, 0, 0)},
	}
	for _, d := range days {
		_, err := svc.CheckIn(ctx, member.ID, d.in, "")
		require.NoError(t, err)
		_, err = svc.CheckOut(ctx, member.ID, d.out)
		require.NoError(t, err)
	}
	// an open record contributes nothing
	_, err = svc.CheckIn(ctx, member.ID, at(2026, 10, 20, 9, 0, 0), "")
	require.NoError(t, err)

	minutes, err = svc.TotalWorkMinutes(ctx, member.ID, 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, 540+485+545, minutes)

	hours, err = svc.TotalWorkHours(ctx, member.ID, 2026, 10)
	require.NoError(t, err)
	assert.Equal(t, "26:10", hours)

	records, err := svc.MonthlyAttendance(ctx, member.ID, 2026, 10)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2026-10-01", records[0].WorkDate)
	assert.Equal(t, "2026-10-31", records[3].WorkDate)

	_, err = svc.MonthlyAttendance(ctx, member.ID, 2026, 13)
	assert.True(t, errors.Is(err, types.ErrInvalidInput))
}

func TestHistoryIsMostRecentFirst(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	alice := createMember(t, repo, "alice")
	bob := createMember(t, repo, "bob")
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		_, err := svc.CheckIn(ctx, alice.ID, at(2026, 10, day, 9, 0, 0), "")
		require.NoError(t, err)
	}
	_, err := svc.CheckIn(ctx, bob.ID, at(2026, 10, 3, 9, 0, 0), "")
	require.NoError(t, err)

	records, err := svc.History(ctx, alice.ID, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2026-10-05", records[0].WorkDate)
	assert.Equal(t, "2026-10-03", records[2].WorkDate)

	all, err := svc.History(ctx, alice.ID, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	everyone, err := svc.ListAll(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, everyone, 6)

	onDate, err := svc.RecordsOnDate(ctx, at(2026, 10, 3, 12, 0, 0))
	require.NoError(t, err)
	assert.Len(t, onDate, 2)
}

func TestDeleteRecord(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	member := createMember(t, repo, "alice")
	ctx := context.Background()

	rec, err := svc.CheckIn(ctx, member.ID, at(2026, 10, 15, 9, 0, 0), "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecord(ctx, rec.ID))

	err = svc.DeleteRecord(ctx, rec.ID)
	assert.True(t, errors.Is(err, types.ErrNotFound))

	today, err := svc.TodayAttendance(ctx, member.ID, at(2026, 10, 15, 10, 0, 0))
	require.NoError(t, err)
	assert.Nil(t, today)
}

func TestDailyRoster(t *testing.T) {
	repo := newTestRepo(t)
	svc := newAttendanceService(repo)
	alice := createMember(t, repo, "alice")
	bob := createMember(t, repo, "bob")
	carol := createMember(t, repo, "carol")
	dave := createMember(t, repo, "dave")
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, alice.ID, at(2026, 10, 15, 8, 45, 0), "")
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, alice.ID, at(2026, 10, 15, 18, 0, 0))
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, bob.ID, at(2026, 10, 15, 9, 30, 0), "")
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, dave.ID, at(2026, 10, 15, 8, 0, 0), "")
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, dave.ID, at(2026, 10, 15, 12, 0, 0))
	require.NoError(t, err)

	roster, err := svc.DailyRoster(ctx, at(2026, 10, 15, 20, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, "2026-10-15", roster.Date)
	assert.Equal(t, 4, roster.Statistics.Total)
	assert.Equal(t, 3, roster.Statistics.Attended)
	assert.Equal(t, 1, roster.Statistics.Absent)
	assert.Equal(t, 1, roster.Statistics.Normal)
	assert.Equal(t, 1, roster.Statistics.Late)
	assert.Equal(t, 1, roster.Statistics.EarlyLeave)

	byID := map[string]int{}
	for i, e := range roster.Entries {
		byID[e.MemberID] = i
	}

	a := roster.Entries[byID[alice.ID]]
	assert.True(t, a.HasAttended)
	assert.Equal(t, "08:45", *a.CheckInTime)
	assert.Equal(t, "18:00", *a.CheckOutTime)
	assert.Equal(t, "9:15", a.WorkHours)

	b := roster.Entries[byID[bob.ID]]
	assert.Equal(t, models.AttendanceLate, b.Status)
	assert.Nil(t, b.CheckOutTime)
	assert.Equal(t, "0:00", b.WorkHours)

	c := roster.Entries[byID[carol.ID]]
	assert.False(t, c.HasAttended)
	assert.Equal(t, models.AttendanceAbsent, c.Status)
	assert.Nil(t, c.WorkedMinutes)
	assert.Equal(t, "0:00", c.WorkHours)
}
