package repo

import (
	"context"

	"github.com/arslanca/portfolio/internal/models"
)

func (r *GormRepo) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.DB.WithContext(ctx).Order("created_date DESC").Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormRepo) GetBlogPost(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *GormRepo) BlogTitleExists(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.BlogPost{}).
		Where("title = ?", title).
		Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateBlogPost(ctx context.Context, post *models.BlogPost) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *GormRepo) SaveBlogPost(ctx context.Context, post *models.BlogPost) error {
	return r.DB.WithContext(ctx).Save(post).Error
}

func (r *GormRepo) DeleteBlogPost(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.BlogPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
