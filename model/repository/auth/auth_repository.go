package auth

import (
	"gorm.io/gorm"

	entity "github.com/ghogue02/leora-admin-portal-sub016/model/entity"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindActiveToken returns a non-revoked access token by its token string.
func (r *AuthRepository) FindActiveToken(token string) (*entity.OauthToken, error) {
	var t entity.OauthToken
	err := r.db.Where("token = ? AND type = 'access' AND revoked = 0", token).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindActiveUser returns an active admin user by ID.
func (r *AuthRepository) FindActiveUser(userID uint) (*entity.AdminUser, error) {
	var u entity.AdminUser
	err := r.db.Where("user_id = ? AND is_active = 1", userID).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindAssignedCustomerIDs returns the customer IDs assigned to a sales rep.
func (r *AuthRepository) FindAssignedCustomerIDs(repID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entity.Customer{}).
		Where("sales_rep_id = ?", repID).
		Pluck("customer_id", &ids).Error
	return ids, err
}
