package repo

import (
	"context"

	"github.com/arslanca/portfolio/internal/models"
)

func (r *GormRepo) ListProjects(ctx context.Context) ([]models.PinnedProject, error) {
	var projects []models.PinnedProject
	if err := r.DB.WithContext(ctx).Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *GormRepo) GetProject(ctx context.Context, id uint) (*models.PinnedProject, error) {
	var project models.PinnedProject
	if err := r.DB.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (r *GormRepo) CreateProject(ctx context.Context, project *models.PinnedProject) error {
	return r.DB.WithContext(ctx).Create(project).Error
}

func (r *GormRepo) SaveProject(ctx context.Context, project *models.PinnedProject) error {
	return r.DB.WithContext(ctx).Save(project).Error
}

func (r *GormRepo) DeleteProject(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.PinnedProject{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
