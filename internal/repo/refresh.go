package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arslanca/portfolio/internal/models"
)

func (r *GormRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *GormRepo) FindRefreshByDigest(ctx context.Context, digest string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", digest).First(&token).Error; err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

// ActiveRefreshTokens returns the user's non-revoked tokens ordered by
// expiry descending, newest session first.
func (r *GormRepo) ActiveRefreshTokens(ctx context.Context, userID uint) ([]models.RefreshToken, error) {
	var list []models.RefreshToken
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND revoked = ?", userID, false).
		Order("expires_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepo) RevokeRefreshTokens(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id IN ?", ids).
		Update("revoked", true).Error
}

// RevokeRefreshByDigest flags a single token on logout. A digest with
// no matching row is not an error: logout is idempotent.
func (r *GormRepo) RevokeRefreshByDigest(ctx context.Context, digest string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", digest).
		Update("revoked", true).Error
}

// RotateRefresh marks the presented token revoked and inserts its
// replacement in one transaction. The revoked re-check inside the
// transaction makes concurrent replays of the same token lose: exactly
// one caller commits, the rest get ErrTokenRevoked.
func (r *GormRepo) RotateRefresh(ctx context.Context, oldDigest string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		if err := tx.Where("token = ?", oldDigest).First(&stored).Error; err != nil {
			return notFound(err)
		}
		if stored.Revoked || stored.ExpiresAt < time.Now().Unix() {
			return ErrTokenRevoked
		}
		if err := tx.Model(&models.RefreshToken{}).
			Where("id = ? AND revoked = ?", stored.ID, false).
			Update("revoked", true); err.Error != nil {
			return err.Error
		} else if err.RowsAffected == 0 {
			return ErrTokenRevoked
		}
		return tx.Create(next).Error
	})
}

func (r *GormRepo) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("expires_at < ?", now.Unix()).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

func (r *GormRepo) DeleteOldRevokedRefreshTokens(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("revoked = ? AND expires_at < ?", true, cutoff.Unix()).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}
