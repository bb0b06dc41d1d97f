package repository

import (
	"context"
	"time"

	"hr_payroll/models"
)

func (r *Repository) CreateMember(ctx context.Context, m *models.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *Repository) FindMember(ctx context.Context, id string) (*models.Member, error) {
	return first[models.Member](r.db.WithContext(ctx).Where("id = ?", id))
}

// ListMembers returns active members ordered by name.
func (r *Repository) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("full_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *Repository) UpdateAnnualSalary(ctx context.Context, id, token string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"annual_salary": token,
			"updated_at":    time.Now(),
		})
	return res.RowsAffected, res.Error
}
