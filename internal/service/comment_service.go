package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Bozotek/pickaguide-api/internal/model"
	"github.com/Bozotek/pickaguide-api/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, userID, advertID uuid.UUID, content string) ([]model.Comment, error)
	ListForAdvert(ctx context.Context, advertID uuid.UUID) ([]model.Comment, error)
	ToggleLike(ctx context.Context, userID, advertID, commentID uuid.UUID) ([]model.Comment, error)
	Remove(ctx context.Context, userID, advertID, commentID uuid.UUID) ([]model.Comment, error)
}

type commentService struct {
	advertRepo  repository.AdvertRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(advertRepo repository.AdvertRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{advertRepo: advertRepo, commentRepo: commentRepo}
}

// Create posts a comment and returns the advert's refreshed comment list.
func (s *commentService) Create(ctx context.Context, userID, advertID uuid.UUID, content string) ([]model.Comment, error) {
	if content == "" {
		return nil, missingField("content")
	}

	if _, err := s.advertRepo.FindByID(ctx, advertID); err != nil {
		return nil, translateFind(err)
	}

	comment := &model.Comment{
		AdvertID: advertID,
		OwnerID:  userID,
		Content:  content,
	}
	if _, err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.FindByAdvert(ctx, advertID)
}

func (s *commentService) ListForAdvert(ctx context.Context, advertID uuid.UUID) ([]model.Comment, error) {
	return s.commentRepo.FindByAdvert(ctx, advertID)
}

func (s *commentService) ToggleLike(ctx context.Context, userID, advertID, commentID uuid.UUID) ([]model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, translateFind(err)
	}
	if comment.AdvertID != advertID {
		return nil, ErrNotFound
	}

	id := userID.String()
	liked := false
	next := make(model.StringList, 0, len(comment.LikedBy))
	for _, previous := range comment.LikedBy {
		if previous == id {
			liked = true
			continue
		}
		next = append(next, previous)
	}
	if !liked {
		next = append(next, id)
	}

	if err := s.commentRepo.SetLikedBy(ctx, commentID, next); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByAdvert(ctx, advertID)
}

// Remove deletes the user's own comment.
func (s *commentService) Remove(ctx context.Context, userID, advertID, commentID uuid.UUID) ([]model.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return nil, translateFind(err)
	}
	if comment.AdvertID != advertID || comment.OwnerID != userID {
		return nil, ErrNotFound
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByAdvert(ctx, advertID)
}
