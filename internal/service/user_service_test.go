package service

import (
	"Pulseboard/internal/api/dto"
	"Pulseboard/internal/model"
	"Pulseboard/internal/pkg/consts"
	"Pulseboard/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	nextID uint64
	users  map[uint64]*model.User
	roles  map[uint64][]uint64 // userID -> roleIDs
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint64]*model.User), roles: make(map[uint64][]uint64)}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username != nil && *user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email != nil && *user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User, roles *[]*model.UserRole) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = user
	if roles != nil {
		for _, role := range *roles {
			f.roles[user.ID] = append(f.roles[user.ID], role.RoleID)
		}
	}
	return nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateUserIsBan(_ context.Context, id uint64, isBan bool) (int64, error) {
	if user, ok := f.users[id]; ok {
		user.IsBan = isBan
		return 1, nil
	}
	return 0, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id uint64) error {
	if user, ok := f.users[id]; ok {
		user.IsDelete = true
	}
	return nil
}

var roleNameByID = map[uint64]string{
	consts.RoleUserID:  consts.RoleUser,
	consts.RoleAdminID: consts.RoleAdmin,
}

type fakeUserRolesRepo struct {
	users *fakeUserRepo
}

func (f *fakeUserRolesRepo) GetRoles(_ context.Context) ([]*model.Role, error) {
	return []*model.Role{
		{ID: consts.RoleUserID, Name: consts.RoleUser},
		{ID: consts.RoleAdminID, Name: consts.RoleAdmin},
	}, nil
}

func (f *fakeUserRolesRepo) GetUserRoles(_ context.Context, userId uint64) ([]*model.Role, error) {
	result := make([]*model.Role, 0)
	for _, roleID := range f.users.roles[userId] {
		result = append(result, &model.Role{ID: roleID, Name: roleNameByID[roleID]})
	}
	return result, nil
}

func (f *fakeUserRolesRepo) GetUserHasRole(_ context.Context, userId uint64, roleId uint64) (bool, error) {
	for _, id := range f.users.roles[userId] {
		if id == roleId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRolesRepo) AddRoleToUser(_ context.Context, userId uint64, roleId uint64) error {
	f.users.roles[userId] = append(f.users.roles[userId], roleId)
	return nil
}

func (f *fakeUserRolesRepo) DeleteRoleFromUser(_ context.Context, userId uint64, roleId uint64) error {
	kept := f.users.roles[userId][:0]
	for _, id := range f.users.roles[userId] {
		if id != roleId {
			kept = append(kept, id)
		}
	}
	f.users.roles[userId] = kept
	return nil
}

func newUserFixture() (UserService, *fakeUserRepo) {
	users := newFakeUserRepo()
	return NewUserService(users, &fakeUserRolesRepo{users: users}), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	err := svc.Register(ctx, &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	created, err := users.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, created)
	// 密码只存哈希，时区缺省 UTC
	assert.NotEqual(t, "secret123", *created.Password)
	assert.Equal(t, "UTC", created.Timezone)

	token, err := svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "alice", token.User.Username)
	assert.Equal(t, []string{consts.RoleUser}, token.User.Roles)

	claims, err := security.ValidateToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestRegister_Duplicates(t *testing.T) {
	svc, _ := newUserFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}))

	err := svc.Register(ctx, &dto.RegisterDTO{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserEmailExist)

	err = svc.Register(ctx, &dto.RegisterDTO{
		Username: "alice", Email: "bob@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserUsernameExist)
}

func TestLogin_Failures(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}))

	_, err := svc.Login(ctx, &dto.LoginDTO{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	user, _ := users.GetUserByEmail(ctx, "alice@example.com")
	user.IsBan = true
	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserBan)

	user.IsBan = false
	user.IsDelete = true
	_, err = svc.Login(ctx, &dto.LoginDTO{Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserInfo(t *testing.T) {
	svc, users := newUserFixture()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{
		Username: "alice", Email: "alice@example.com", Password: "secret123", Timezone: "Asia/Tokyo",
	}))
	created, _ := users.GetUserByEmail(ctx, "alice@example.com")

	info, err := svc.GetUserInfo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "Asia/Tokyo", info.Timezone)

	_, err = svc.GetUserInfo(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
