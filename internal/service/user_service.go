package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/identity"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type UserService interface {
	StoreFromIdentity(ctx context.Context, info *identity.UserInfo, tokenIdentifier string) (*model.User, error)
	GetUserById(ctx context.Context, userID uint64) (*dto.UserDTO, error)
	GetUserByUsername(ctx context.Context, username string) (*dto.UserDTO, error)
	UpdateUsername(ctx context.Context, userID uint64, username string) error
	UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) error
}

type userServiceImpl struct {
	userRepo repository.UserRepo
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// StoreFromIdentity 首次见到的身份创建用户，档案变更时跟随更新
func (s *userServiceImpl) StoreFromIdentity(ctx context.Context, info *identity.UserInfo, tokenIdentifier string) (*model.User, error) {
	user, err := s.userRepo.GetUserByTokenIdentifier(ctx, tokenIdentifier)
	if err != nil {
		return nil, err
	}

	name := info.Name
	if name == "" {
		name = "Anonymous"
	}

	if user != nil {
		if user.Name != name {
			user.Name = name
			if err = s.userRepo.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
		}
		_ = s.userRepo.UpdateLastActive(ctx, user.ID)
		return user, nil
	}

	imageURL := info.Picture
	if imageURL == "" {
		imageURL = consts.DefaultAvatarURL
	}

	user = &model.User{
		TokenIdentifier: tokenIdentifier,
		Name:            name,
		Email:           info.Email,
		ImageURL:        imageURL,
		CreatedAt:       s.now(),
		LastActiveAt:    s.now(),
	}

	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if isDuplicateError(err) {
			return s.userRepo.GetUserByTokenIdentifier(ctx, tokenIdentifier)
		}
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) GetUserById(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return toUserDTO(user), nil
}

func (s *userServiceImpl) UpdateUsername(ctx context.Context, userID uint64, username string) error {
	if err := s.checkUsername(ctx, userID, username); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.Username = &username
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uint64, req *dto.UpdateProfileDTO) error {
	if req.Bio != nil && len([]rune(*req.Bio)) > consts.MaxBioLength {
		return ErrBioTooLong
	}
	if req.Username != nil {
		if err := s.checkUsername(ctx, userID, *req.Username); err != nil {
			return err
		}
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		user.ImageURL = *req.ImageURL
	}
	if req.State != nil {
		user.State = req.State
	}
	if req.Country != nil {
		user.Country = req.Country
	}
	if req.Username != nil {
		user.Username = req.Username
	}

	return s.userRepo.UpdateUser(ctx, user)
}

func (s *userServiceImpl) checkUsername(ctx context.Context, userID uint64, username string) error {
	if len(username) < consts.MinUsernameLength || len(username) > consts.MaxUsernameLength {
		return ErrUsernameLength
	}
	if !util.ValidUsernameFormat(username) {
		return ErrUsernameInvalid
	}

	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != userID {
		return ErrUsernameExist
	}
	return nil
}

func toUserDTO(user *model.User) *dto.UserDTO {
	item := &dto.UserDTO{}
	_ = copier.Copy(item, user)
	return item
}

func toAuthorDTO(user *model.User) *dto.AuthorDTO {
	if user == nil || user.ID == 0 {
		return nil
	}
	return &dto.AuthorDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		ImageURL: user.ImageURL,
	}
}
