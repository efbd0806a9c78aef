package service

import (
	"context"

	"daygrid/internal/models"
	"daygrid/internal/repository"
)

// FriendService manages directed friend edges. An edge is visible only to
// its creator; reciprocity requires the other user to create the reverse
// edge themselves.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// Request creates the edge principal -> target, or returns the existing one.
// Idempotent: the second call for the same pair reports created=false and
// hands back the same edge instead of erroring.
func (s *FriendService) Request(ctx context.Context, principalID, targetUserID uint) (*models.Friend, bool, error) {
	if principalID == targetUserID {
		return nil, false, models.NewValidationError("Cannot add yourself as a friend")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, false, err
	}

	existing, err := s.friendRepo.GetEdge(ctx, principalID, targetUserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	friend := &models.Friend{
		UserID:   principalID,
		FriendID: targetUserID,
	}
	if err := s.friendRepo.Create(ctx, friend); err != nil {
		return nil, false, err
	}

	created, err := s.friendRepo.GetByID(ctx, friend.ID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// FriendsOf returns the principal's outgoing edges, ordered by creation.
func (s *FriendService) FriendsOf(ctx context.Context, principalID uint) ([]models.Friend, error) {
	return s.friendRepo.ListByUser(ctx, principalID)
}

// Remove deletes one of the principal's own edges.
func (s *FriendService) Remove(ctx context.Context, principalID, friendEdgeID uint) error {
	edge, err := s.friendRepo.GetByID(ctx, friendEdgeID)
	if err != nil {
		return err
	}
	if edge.UserID != principalID {
		return models.NewForbiddenError("You can only remove your own friends")
	}
	return s.friendRepo.Delete(ctx, edge.ID)
}
