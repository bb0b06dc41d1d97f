package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hr_payroll/models"
	"hr_payroll/types"
)

func (r *Repository) InsertCheckIn(ctx context.Context, rec *models.Attendance) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return types.ErrAlreadyCheckedIn
		}
		return err
	}
	return nil
}

// UpdateCheckOut applies the single allowed mutation of a record. The
// conditional update makes a second concurrent check-out affect zero rows.
func (r *Repository) UpdateCheckOut(ctx context.Context, rec *models.Attendance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Attendance{}).
			Where("id = ? AND check_out_time IS NULL", rec.ID).
			Updates(map[string]interface{}{
				"check_out_time": rec.CheckOutTime,
				"worked_minutes": rec.WorkedMinutes,
				"status":         rec.Status,
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			return nil
		}

		var count int64
		if err := tx.Model(&models.Attendance{}).Where("id = ?", rec.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.ErrNoCheckInRecord
		}
		return types.ErrAlreadyCheckedOut
	})
}

func (r *Repository) FindByMemberAndDate(ctx context.Context, memberID, workDate string) (*models.Attendance, error) {
	return first[models.Attendance](r.db.WithContext(ctx).
		Where("user_id = ? AND work_date = ?", memberID, workDate))
}

func (r *Repository) ListByMember(ctx context.Context, memberID string, limit int) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", memberID).
		Order("work_date DESC").Order("check_in_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Attendance
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) ListByMemberBetween(ctx context.Context, memberID, fromDate, toDate string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND work_date >= ? AND work_date < ?", memberID, fromDate, toDate).
		Order("work_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) ListAll(ctx context.Context, limit int) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Order("work_date DESC").Order("check_in_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.Attendance
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) ListByDate(ctx context.Context, workDate string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("work_date = ?", workDate).
		Order("check_in_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repository) SumWorkedMinutes(ctx context.Context, memberID, fromDate, toDate string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Select("COALESCE(SUM(worked_minutes), 0)").
		Where("user_id = ? AND work_date >= ? AND work_date < ?", memberID, fromDate, toDate).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

func (r *Repository) DeleteAttendance(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Attendance{})
	return res.RowsAffected, res.Error
}
