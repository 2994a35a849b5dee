package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cashflow/payments-api/internal/constant/model/db"
	"github.com/cashflow/payments-api/internal/core"
	"github.com/cashflow/payments-api/internal/port/output"
)

// GormUserRepository is a secondary adapter that implements the
// UserRepository output port
type GormUserRepository struct {
	gormDB *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository
func NewGormUserRepository(gormDB *gorm.DB) output.UserRepository {
	return &GormUserRepository{gormDB: gormDB}
}

// FindByUsername retrieves a user by username. A miss is reported through
// the found flag, not as an error.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*core.User, bool, error) {
	var dbUser db.User
	if err := r.gormDB.WithContext(ctx).Where("username = ?", username).First(&dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find user: %w", err)
	}
	return &core.User{
		ID:           dbUser.ID,
		Username:     dbUser.Username,
		PasswordHash: dbUser.PasswordHash,
	}, true, nil
}

// Create persists a new user and copies back the generated ID
func (r *GormUserRepository) Create(ctx context.Context, user *core.User) error {
	dbUser := db.User{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}
	if err := r.gormDB.WithContext(ctx).Create(&dbUser).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = dbUser.ID
	return nil
}
