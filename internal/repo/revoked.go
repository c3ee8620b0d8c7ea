package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arslanca/portfolio/internal/models"
)

func (r *GormRepo) AddRevokedToken(ctx context.Context, digest string, expiresAt time.Time) error {
	entry := models.RevokedToken{Token: digest, ExpiresAt: expiresAt.Unix()}
	return r.DB.WithContext(ctx).Create(&entry).Error
}

func (r *GormRepo) IsTokenRevoked(ctx context.Context, digest string) (bool, error) {
	var entry models.RevokedToken
	err := r.DB.WithContext(ctx).Where("token = ?", digest).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *GormRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at < ?", now.Unix()).
		Delete(&models.RevokedToken{})
	return res.RowsAffected, res.Error
}
