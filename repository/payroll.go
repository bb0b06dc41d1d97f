package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hr_payroll/models"
	"hr_payroll/types"
)

// InsertProfile stores p and, when p is active, deactivates the member's
// other active profiles in the same transaction.
func (r *Repository) InsertProfile(ctx context.Context, p *models.CompensationProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.Status == models.ProfileActive {
			if err := deactivateOthers(tx, p.UserID, p.ID); err != nil {
				return err
			}
		}
		return tx.Create(p).Error
	})
}

func (r *Repository) UpdateProfile(ctx context.Context, p *models.CompensationProfile) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if p.Status == models.ProfileActive {
			if err := deactivateOthers(tx, p.UserID, p.ID); err != nil {
				return err
			}
		}

		res := tx.Model(&models.CompensationProfile{}).
			Where("id = ?", p.ID).
			Updates(map[string]interface{}{
				"user_id":             p.UserID,
				"base_salary":         p.BaseSalary,
				"position_allowance":  p.PositionAllowance,
				"meal_allowance":      p.MealAllowance,
				"transport_allowance": p.TransportAllowance,
				"account_bank":        p.AccountBank,
				"account_number":      p.AccountNumber,
				"effective_date":      p.EffectiveDate,
				"status":              p.Status,
				"updated_at":          time.Now(),
			})
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func deactivateOthers(tx *gorm.DB, memberID, keepID string) error {
	return tx.Model(&models.CompensationProfile{}).
		Where("user_id = ? AND status = ? AND id <> ?", memberID, models.ProfileActive, keepID).
		Updates(map[string]interface{}{
			"status":     models.ProfileInactive,
			"updated_at": time.Now(),
		}).Error
}

func (r *Repository) FindProfile(ctx context.Context, id string) (*models.CompensationProfile, error) {
	return first[models.CompensationProfile](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *Repository) FindActiveProfile(ctx context.Context, memberID string) (*models.CompensationProfile, error) {
	var profiles []models.CompensationProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", memberID, models.ProfileActive).
		Order("effective_date DESC").
		Limit(1).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

func (r *Repository) ListProfiles(ctx context.Context) ([]models.CompensationProfile, error) {
	var profiles []models.CompensationProfile
	err := r.db.WithContext(ctx).
		Order("user_id ASC").Order("effective_date DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *Repository) DeleteProfile(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CompensationProfile{})
	return res.RowsAffected, res.Error
}

func (r *Repository) InsertPayment(ctx context.Context, p *models.SalaryPayment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isDuplicate(err) {
			return types.ErrDuplicatePayment
		}
		return err
	}
	return nil
}

func (r *Repository) UpdatePayment(ctx context.Context, p *models.SalaryPayment) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SalaryPayment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"base_salary":          p.BaseSalary,
			"position_allowance":   p.PositionAllowance,
			"meal_allowance":       p.MealAllowance,
			"transport_allowance":  p.TransportAllowance,
			"overtime_pay":         p.OvertimePay,
			"bonus":                p.Bonus,
			"total_amount":         p.TotalAmount,
			"income_tax":           p.IncomeTax,
			"national_pension":     p.NationalPension,
			"health_insurance":     p.HealthInsurance,
			"employment_insurance": p.EmploymentInsurance,
			"total_deduction":      p.TotalDeduction,
			"net_amount":           p.NetAmount,
			"payment_date":         p.PaymentDate,
			"work_days":            p.WorkDays,
			"work_hours":           p.WorkHours,
			"updated_at":           time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *Repository) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SalaryPayment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *Repository) FindPayment(ctx context.Context, id string) (*models.SalaryPayment, error) {
	return first[models.SalaryPayment](r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *Repository) FindPaymentForPeriod(ctx context.Context, memberID string, year, month int) (*models.SalaryPayment, error) {
	return first[models.SalaryPayment](r.db.WithContext(ctx).
		Where("user_id = ? AND payment_year = ? AND payment_month = ?", memberID, year, month))
}

func (r *Repository) ListPaymentsByMember(ctx context.Context, memberID string) ([]models.SalaryPayment, error) {
	var payments []models.SalaryPayment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", memberID).
		Order("payment_year DESC").Order("payment_month DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *Repository) ListPayments(ctx context.Context, year, month *int) ([]models.SalaryPayment, error) {
	query := r.db.WithContext(ctx).Model(&models.SalaryPayment{})
	if year != nil {
		query = query.Where("payment_year = ?", *year)
	}
	if month != nil {
		query = query.Where("payment_month = ?", *month)
	}

	var payments []models.SalaryPayment
	err := query.
		Order("payment_year DESC").Order("payment_month DESC").Order("user_id ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *Repository) DeletePayment(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SalaryPayment{})
	return res.RowsAffected, res.Error
}
