package services

import (
	"context"
	"fmt"
	"time"

	"hr_payroll/models"
)

type RosterEntry struct {
	MemberID      string                  `json:"member_id"`
	Username      string                  `json:"username"`
	FullName      string                  `json:"full_name"`
	Email         string                  `json:"email"`
	Role          string                  `json:"role"`
	HasAttended   bool                    `json:"has_attended"`
	CheckInTime   *string                 `json:"check_in_time"`
	CheckOutTime  *string                 `json:"check_out_time"`
	Status        models.AttendanceStatus `json:"status"`
	WorkedMinutes *int                    `json:"worked_minutes"`
	WorkHours     string                  `json:"work_hours"`
}

type RosterStats struct {
	Total      int `json:"total"`
	Attended   int `json:"attended"`
	Absent     int `json:"absent"`
	Normal     int `json:"normal"`
	Late       int `json:"late"`
	EarlyLeave int `json:"early_leave"`
}

type Roster struct {
	Date       string        `json:"date"`
	Entries    []RosterEntry `json:"employees"`
	Statistics RosterStats   `json:"statistics"`
}

// DailyRoster reports every member for one date. Members with no record
// are ABSENT with zero worked time.
func (s *AttendanceService) DailyRoster(ctx context.Context, date time.Time) (*Roster, error) {
	members, err := s.members.ListMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	workDate := s.WorkDate(date)
	records, err := s.store.ListByDate(ctx, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", workDate, err)
	}

	byMember := make(map[string]models.Attendance, len(records))
	for _, rec := range records {
		byMember[rec.UserID] = rec
	}

	roster := &Roster{
		Date:    workDate,
		Entries: make([]RosterEntry, 0, len(members)),
	}
	for _, m := range members {
		entry := RosterEntry{
			MemberID: m.ID,
			Username: m.Username,
			FullName: m.FullName,
			Email:    m.Email,
			Role:     m.Role,
		}

		rec, ok := byMember[m.ID]
		if !ok {
			entry.Status = models.AttendanceAbsent
			entry.WorkHours = FormatWorkMinutes(0)
			roster.Statistics.Absent++
			roster.Entries = append(roster.Entries, entry)
			continue
		}

		entry.HasAttended = true
		entry.CheckInTime = s.clock(&rec.CheckInTime)
		entry.CheckOutTime = s.clock(rec.CheckOutTime)
		entry.Status = rec.Status
		entry.WorkedMinutes = rec.WorkedMinutes
		entry.WorkHours = FormatWorkMinutes(0)
		if rec.WorkedMinutes != nil {
			entry.WorkHours = FormatWorkMinutes(*rec.WorkedMinutes)
		}

		roster.Statistics.Attended++
		switch rec.Status {
		case models.AttendanceNormal:
			roster.Statistics.Normal++
		case models.AttendanceLate:
			roster.Statistics.Late++
		case models.AttendanceEarlyLeave:
			roster.Statistics.EarlyLeave++
		}
		roster.Entries = append(roster.Entries, entry)
	}
	roster.Statistics.Total = len(members)

	return roster, nil
}

func (s *AttendanceService) clock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	hm := t.In(s.policy.Location).Format("15:04")
	return &hm
}
