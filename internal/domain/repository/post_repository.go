package repository

import (
	"context"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Post, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Post, error)
	UpdateLikes(ctx context.Context, postID string, likes []string) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id string) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	ListByPostID(ctx context.Context, postID string) ([]*entity.Comment, error)
}

type SaveRepository interface {
	Create(ctx context.Context, save *entity.Save) error
	GetByUserAndPost(ctx context.Context, userID, postID string) (*entity.Save, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Save, error)
	Delete(ctx context.Context, id string) error
}
