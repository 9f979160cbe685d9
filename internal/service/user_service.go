package service

import (
	"Pulseboard/internal/api/dto"
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/redis"
	"Pulseboard/internal/pkg/security"
	"Pulseboard/internal/repository"
	"context"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
}

type UserServiceImpl struct {
	userRepo      repository.UserRepo
	userRolesRepo repository.UserRolesRepo
}

func NewUserService(userRepo repository.UserRepo, userRolesRepo repository.UserRolesRepo) UserService {
	return &UserServiceImpl{
		userRepo:      userRepo,
		userRolesRepo: userRolesRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	findUser, err = s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	timezone := regDTO.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	user := &model.User{
		Username: &regDTO.Username,
		Email:    &regDTO.Email,
		Password: &passwordHash,
		Timezone: timezone,
	}
	roles := []*model.UserRole{
		{RoleID: consts.RoleUserID},
	}
	return s.userRepo.CreateUser(ctx, user, &roles)
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.TokenDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, loginDTO.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(loginDTO.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	roleNames, err := s.getRoleNamesForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := security.GenerateToken(user.ID, roleNames)
	if err != nil {
		return nil, err
	}

	return &dto.TokenDTO{
		Token: token,
		User:  s.toUserDTO(user, roleNames),
	}, nil
}

// Logout 将令牌签名写入黑名单，有效期与令牌寿命一致
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenRevokedKey+signature, true, security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}
	roleNames, err := s.getRoleNamesForUser(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.toUserDTO(user, roleNames), nil
}

func (s *UserServiceImpl) getRoleNamesForUser(ctx context.Context, user *model.User) ([]string, error) {
	roles, err := s.userRolesRepo.GetUserRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	roleNames := make([]string, 0, len(roles))
	for _, role := range roles {
		roleNames = append(roleNames, role.Name)
	}
	return roleNames, nil
}

func (s *UserServiceImpl) toUserDTO(user *model.User, roleNames []string) *dto.UserDTO {
	userDTO := &dto.UserDTO{
		UserID:    user.ID,
		Timezone:  user.Timezone,
		Roles:     roleNames,
		CreatedAt: user.CreatedAt,
	}
	if user.Username != nil {
		userDTO.Username = *user.Username
	}
	if user.Email != nil {
		userDTO.Email = *user.Email
	}
	return userDTO
}
