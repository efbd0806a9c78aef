package repository

import (
	"context"
	"errors"

	"daygrid/internal/models"

	"gorm.io/gorm"
)

// FriendRepository defines the interface for friend-edge data operations
type FriendRepository interface {
	Create(ctx context.Context, friend *models.Friend) error
	GetByID(ctx context.Context, id uint) (*models.Friend, error)
	GetEdge(ctx context.Context, userID, friendID uint) (*models.Friend, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Friend, error)
	Delete(ctx context.Context, id uint) error
}

// friendRepository implements FriendRepository
type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(ctx context.Context, friend *models.Friend) error {
	if err := r.db.WithContext(ctx).Create(friend).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendRepository) GetByID(ctx context.Context, id uint) (*models.Friend, error) {
	var friend models.Friend
	if err := readDB(r.db).WithContext(ctx).Preload("Friend").First(&friend, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Friend", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &friend, nil
}

// GetEdge returns the directed edge user -> friend, or nil when none exists.
// The reverse edge is a separate record and is not consulted.
func (r *friendRepository) GetEdge(ctx context.Context, userID, friendID uint) (*models.Friend, error) {
	var friend models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Preload("Friend").
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		First(&friend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &friend, nil
}

func (r *friendRepository) ListByUser(ctx context.Context, userID uint) ([]models.Friend, error) {
	var friends []models.Friend
	if err := readDB(r.db).WithContext(ctx).
		Preload("Friend").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friends, nil
}

func (r *friendRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Friend{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
