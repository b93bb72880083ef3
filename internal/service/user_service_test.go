package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/identity"
	"Inkstone/internal/repository"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *userServiceImpl {
	return &userServiceImpl{
		userRepo: repository.NewUserRepo(db),
		now:      fixedNow,
	}
}

func TestStoreFromIdentityCreatesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	info := &identity.UserInfo{
		Subject: "auth0|abc",
		Name:    "Alice",
		Email:   "alice@example.com",
		Picture: "https://cdn.example.com/alice.png",
	}

	user, err := svc.StoreFromIdentity(ctx, info, "auth0|abc")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, info.Picture, user.ImageURL)

	// 同一身份再登录不新建用户
	again, err := svc.StoreFromIdentity(ctx, info, "auth0|abc")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStoreFromIdentityDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)

	user, err := svc.StoreFromIdentity(context.Background(), &identity.UserInfo{
		Subject: "auth0|min",
		Email:   "min@example.com",
	}, "auth0|min")
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", user.Name)
	assert.Equal(t, consts.DefaultAvatarURL, user.ImageURL)
}

func TestStoreFromIdentitySyncsNameChange(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := svc.StoreFromIdentity(ctx, &identity.UserInfo{Subject: "auth0|abc", Name: "Alice"}, "auth0|abc")
	require.NoError(t, err)

	user, err := svc.StoreFromIdentity(ctx, &identity.UserInfo{Subject: "auth0|abc", Name: "Alice Chen"}, "auth0|abc")
	require.NoError(t, err)
	assert.Equal(t, "Alice Chen", user.Name)
}

func TestUpdateUsernameValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	assert.ErrorIs(t, svc.UpdateUsername(ctx, alice.ID, "ab"), ErrUsernameLength)
	assert.ErrorIs(t, svc.UpdateUsername(ctx, alice.ID, strings.Repeat("a", 21)), ErrUsernameLength)
	assert.ErrorIs(t, svc.UpdateUsername(ctx, alice.ID, "bad name!"), ErrUsernameInvalid)

	require.NoError(t, svc.UpdateUsername(ctx, alice.ID, "alice_blog"))

	// 已被占用的用户名不允许再注册
	assert.ErrorIs(t, svc.UpdateUsername(ctx, bob.ID, "alice_blog"), ErrUsernameExist)

	// 自己重设同名不算冲突
	require.NoError(t, svc.UpdateUsername(ctx, alice.ID, "alice_blog"))
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	bio := "写字的人"
	name := "Alice C"
	require.NoError(t, svc.UpdateProfile(ctx, alice.ID, &dto.UpdateProfileDTO{Name: &name, Bio: &bio}))

	got, err := svc.GetUserById(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, bio, *got.Bio)
	// 没提交的字段保持原值
	assert.Equal(t, alice.ImageURL, got.ImageURL)
}

func TestUpdateProfileBioTooLong(t *testing.T) {
	db := newTestDB(t)
	svc := newUserService(db)
	alice := seedUser(t, db, "alice")

	long := strings.Repeat("字", consts.MaxBioLength+1)
	err := svc.UpdateProfile(context.Background(), alice.ID, &dto.UpdateProfileDTO{Bio: &long})
	assert.ErrorIs(t, err, ErrBioTooLong)
}
