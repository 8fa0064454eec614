package usecase

import (
	"context"
	"time"

	"github.com/Vadim-maker-source/vexnum/internal/domain/entity"
	"github.com/Vadim-maker-source/vexnum/internal/domain/repository"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	storage  FileStorage
}

func NewUserUseCase(userRepo repository.UserRepository, storage FileStorage) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		storage:  storage,
	}
}

type UpdateProfileInput struct {
	Name string
	Bio  string
}

// Profile is a user decorated with a resolved avatar URL.
type Profile struct {
	entity.User
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (uc *UserUseCase) profile(user *entity.User) *Profile {
	p := &Profile{User: *user}
	if user.ImageID != "" {
		p.AvatarURL = uc.storage.ViewURL(user.ImageID)
	}
	return p
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := uc.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}
	return uc.profile(user), nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*Profile, error) {
	user, err := uc.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	return uc.profile(user), nil
}

// UpdateAvatar replaces the profile image, dropping the previous blob.
func (uc *UserUseCase) UpdateAvatar(ctx context.Context, userID string, avatar Upload) (*Profile, error) {
	user, err := uc.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	fileID, err := uc.storage.Upload(ctx, avatar.Reader, avatar.ContentType, "avatars")
	if err != nil {
		return nil, errors.Internal("Failed to upload avatar", err)
	}

	previous := user.ImageID
	user.ImageID = fileID
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update user profile", err)
	}

	if previous != "" {
		// Best effort: the new avatar is already live.
		_ = uc.storage.Delete(ctx, previous)
	}

	return uc.profile(user), nil
}

func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*Profile, int64, error) {
	users, total, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list users", err)
	}

	profiles := make([]*Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, uc.profile(user))
	}
	return profiles, total, nil
}
