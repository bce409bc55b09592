package comment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-timeoff/internal/leave"

	leaveerrors "go-timeoff/internal/leave/errors"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt string    `json:"created_at"`
}

type Service interface {
	AddToLeave(ctx context.Context, companyID, authorID, leaveID string, req CreateCommentRequest) (CommentResponse, error)
	ListForLeave(ctx context.Context, companyID, leaveID string) ([]CommentResponse, error)
}

type service struct {
	repo      Repository
	leaveRepo leave.Repository
	logger    *zap.Logger
}

func NewService(repo Repository, leaveRepo leave.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("comment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("comment.service")
	}
	return &service{repo: repo, leaveRepo: leaveRepo, logger: l}
}

func (s *service) AddToLeave(ctx context.Context, companyID, authorID, leaveID string, req CreateCommentRequest) (CommentResponse, error) {
	l, err := s.leaveRepo.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return CommentResponse{}, err
	}
	if l == nil {
		return CommentResponse{}, leaveerrors.ErrLeaveNotFound
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return CommentResponse{}, err
	}

	c := &Comment{
		ID:         uuid.New(),
		CompanyID:  l.CompanyID,
		EntityType: EntityLeave,
		EntityID:   l.ID,
		AuthorID:   authorUUID,
		Body:       req.Body,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return CommentResponse{}, err
	}
	return toCommentResponse(c), nil
}

func (s *service) ListForLeave(ctx context.Context, companyID, leaveID string) ([]CommentResponse, error) {
	l, err := s.leaveRepo.FindByIDAndCompany(ctx, companyID, leaveID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, leaveerrors.ErrLeaveNotFound
	}

	comments, err := s.repo.FindByEntity(ctx, EntityLeave, leaveID)
	if err != nil {
		return nil, err
	}
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	return out, nil
}

func toCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
