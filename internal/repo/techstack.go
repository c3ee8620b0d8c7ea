package repo

import (
	"context"

	"github.com/arslanca/portfolio/internal/models"
)

func (r *GormRepo) ListTechStack(ctx context.Context) ([]models.TechStack, error) {
	var stack []models.TechStack
	if err := r.DB.WithContext(ctx).Find(&stack).Error; err != nil {
		return nil, err
	}
	return stack, nil
}

func (r *GormRepo) GetTechStack(ctx context.Context, id uint) (*models.TechStack, error) {
	var entry models.TechStack
	if err := r.DB.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

func (r *GormRepo) CreateTechStack(ctx context.Context, entry *models.TechStack) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *GormRepo) SaveTechStack(ctx context.Context, entry *models.TechStack) error {
	return r.DB.WithContext(ctx).Save(entry).Error
}

func (r *GormRepo) DeleteTechStack(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.TechStack{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
