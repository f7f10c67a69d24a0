// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/repository"
	repomocks "github.com/ecodeclub/passport/internal/identity/internal/repository/mocks"
	svcmocks "github.com/ecodeclub/passport/internal/identity/internal/service/mocks"
	"github.com/ecodeclub/passport/internal/user"
	usermocks "github.com/ecodeclub/passport/internal/user/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(repo repository.ThirdPartyIdentityRepository,
	oauth2 OAuth2Service, userSvc user.UserService) Service {
	return NewService(repo, oauth2, NewStateTokenGenerator("test-key"), userSvc)
}

func TestIdentityService_HandleLoginCallback(t *testing.T) {
	t.Parallel()
	info := domain.WechatInfo{
		OpenId:       "open-1",
		UnionId:      "union-1",
		Nickname:     "微信用户",
		HeadImageURL: "https://example.com/avatar.png",
	}

	t.Run("已绑定直接返回用户", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "auth-code").Return(info, nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, ti domain.ThirdPartyIdentity) (domain.ThirdPartyIdentity, error) {
				assert.Equal(t, domain.ProviderWechat, ti.Provider)
				assert.Equal(t, info.UnionId, ti.UnionId)
				assert.Equal(t, info.Nickname, ti.Name)
				ti.Id = 7
				ti.UserId = 42
				return ti, nil
			})
		userSvc := usermocks.NewMockUserService(ctrl)
		userSvc.EXPECT().Profile(gomock.Any(), int64(42)).
			Return(user.User{Id: 42, Nickname: "老用户"}, nil)

		svc := newTestService(repo, oauth2, userSvc)
		res, err := svc.HandleLoginCallback(context.Background(), "auth-code")
		require.NoError(t, err)
		assert.False(t, res.NeedBind)
		assert.Equal(t, int64(42), res.User.Id)
	})

	t.Run("没绑定要走注册绑定页", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "auth-code").Return(info, nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(domain.ThirdPartyIdentity{Id: 7}, nil)

		svc := newTestService(repo, oauth2, usermocks.NewMockUserService(ctrl))
		res, err := svc.HandleLoginCallback(context.Background(), "auth-code")
		require.NoError(t, err)
		assert.True(t, res.NeedBind)
		assert.Equal(t, int64(7), res.IdentityId)
	})

	t.Run("换取信息失败直接终止", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "bad-code").
			Return(domain.WechatInfo{}, errors.New("mock exchange error"))
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)

		svc := newTestService(repo, oauth2, usermocks.NewMockUserService(ctrl))
		_, err := svc.HandleLoginCallback(context.Background(), "bad-code")
		assert.Error(t, err)
	})
}

func TestIdentityService_CompleteBind(t *testing.T) {
	t.Parallel()
	unlinked := domain.ThirdPartyIdentity{
		Id:        7,
		Provider:  domain.ProviderWechat,
		UnionId:   "union-1",
		Name:      "微信用户",
		HeadImage: "https://example.com/avatar.png",
	}

	t.Run("已有账号密码正确", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().FindById(gomock.Any(), int64(7)).Return(unlinked, nil)
		repo.EXPECT().Bind(gomock.Any(), int64(7), int64(42)).Return(nil)
		userSvc := usermocks.NewMockUserService(ctrl)
		existing := user.User{Id: 42, Username: "alice", Password: "$2a$hash"}
		userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").Return(existing, nil)
		userSvc.EXPECT().VerifyPassword(existing, "right-pass").Return(true)

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		u, err := svc.CompleteBind(context.Background(), 7, "alice", "right-pass")
		require.NoError(t, err)
		assert.Equal(t, int64(42), u.Id)
		assert.Empty(t, u.Password)
	})

	t.Run("已有账号密码错误不落任何数据", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().FindById(gomock.Any(), int64(7)).Return(unlinked, nil)
		userSvc := usermocks.NewMockUserService(ctrl)
		existing := user.User{Id: 42, Username: "alice", Password: "$2a$hash"}
		userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").Return(existing, nil)
		userSvc.EXPECT().VerifyPassword(existing, "wrong-pass").Return(false)

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		_, err := svc.CompleteBind(context.Background(), 7, "alice", "wrong-pass")
		assert.ErrorIs(t, err, user.ErrInvalidUserOrPassword)
	})

	t.Run("新登录名顺手注册并带上第三方头像", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().FindById(gomock.Any(), int64(7)).Return(unlinked, nil)
		repo.EXPECT().Bind(gomock.Any(), int64(7), int64(100)).Return(nil)
		userSvc := usermocks.NewMockUserService(ctrl)
		userSvc.EXPECT().FindByUsername(gomock.Any(), "newbie").
			Return(user.User{}, user.ErrUserNotFound)
		userSvc.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, u user.User) (user.User, error) {
				assert.Equal(t, "newbie", u.Username)
				assert.Equal(t, unlinked.HeadImage, u.Avatar)
				assert.Equal(t, unlinked.Name, u.Nickname)
				u.Id = 100
				return u, nil
			})

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		u, err := svc.CompleteBind(context.Background(), 7, "newbie", "new-pass")
		require.NoError(t, err)
		assert.Equal(t, int64(100), u.Id)
	})

	t.Run("第三方账号已经绑定过直接冲突", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		linked := unlinked
		linked.UserId = 1
		repo.EXPECT().FindById(gomock.Any(), int64(7)).Return(linked, nil)

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl),
			usermocks.NewMockUserService(ctrl))
		_, err := svc.CompleteBind(context.Background(), 7, "alice", "pass")
		assert.ErrorIs(t, err, ErrAlreadyLinked)
	})

	t.Run("并发绑定输了也报冲突", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().FindById(gomock.Any(), int64(7)).Return(unlinked, nil)
		repo.EXPECT().Bind(gomock.Any(), int64(7), int64(42)).
			Return(repository.ErrAlreadyLinked)
		userSvc := usermocks.NewMockUserService(ctrl)
		existing := user.User{Id: 42, Username: "alice", Password: "$2a$hash"}
		userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").Return(existing, nil)
		userSvc.EXPECT().VerifyPassword(existing, "pass").Return(true)

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		_, err := svc.CompleteBind(context.Background(), 7, "alice", "pass")
		assert.ErrorIs(t, err, ErrAlreadyLinked)
	})
}

func TestIdentityService_BindToLoggedInUser(t *testing.T) {
	t.Parallel()
	const uid = int64(42)
	stateGen := NewStateTokenGenerator("test-key")
	info := domain.WechatInfo{OpenId: "open-1", UnionId: "union-1"}

	t.Run("state 不对什么都不做", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		// oauth2 和 repo 都不应该被调用
		svc := newTestService(repomocks.NewMockThirdPartyIdentityRepository(ctrl),
			svcmocks.NewMockOAuth2Service(ctrl), usermocks.NewMockUserService(ctrl))
		status, err := svc.BindToLoggedInUser(context.Background(), uid,
			"auth-code", "forged-state")
		require.NoError(t, err)
		assert.Equal(t, BindStatusBadState, status)
	})

	t.Run("别人的 state 也校验不过", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc := newTestService(repomocks.NewMockThirdPartyIdentityRepository(ctrl),
			svcmocks.NewMockOAuth2Service(ctrl), usermocks.NewMockUserService(ctrl))
		status, err := svc.BindToLoggedInUser(context.Background(), uid,
			"auth-code", stateGen.Generate(uid+1))
		require.NoError(t, err)
		assert.Equal(t, BindStatusBadState, status)
	})

	t.Run("绑定成功", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "auth-code").Return(info, nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(domain.ThirdPartyIdentity{Id: 7}, nil)
		repo.EXPECT().Bind(gomock.Any(), int64(7), uid).Return(nil)

		svc := newTestService(repo, oauth2, usermocks.NewMockUserService(ctrl))
		status, err := svc.BindToLoggedInUser(context.Background(), uid,
			"auth-code", stateGen.Generate(uid))
		require.NoError(t, err)
		assert.Equal(t, BindStatusBound, status)
	})

	t.Run("第三方账号已被绑定", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "auth-code").Return(info, nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(domain.ThirdPartyIdentity{Id: 7, UserId: 99}, nil)

		svc := newTestService(repo, oauth2, usermocks.NewMockUserService(ctrl))
		status, err := svc.BindToLoggedInUser(context.Background(), uid,
			"auth-code", stateGen.Generate(uid))
		require.NoError(t, err)
		assert.Equal(t, BindStatusAlreadyLinked, status)
	})

	t.Run("并发绑定输了按已绑定处理", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		oauth2 := svcmocks.NewMockOAuth2Service(ctrl)
		oauth2.EXPECT().Exchange(gomock.Any(), "auth-code").Return(info, nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(domain.ThirdPartyIdentity{Id: 7}, nil)
		repo.EXPECT().Bind(gomock.Any(), int64(7), uid).
			Return(repository.ErrAlreadyLinked)

		svc := newTestService(repo, oauth2, usermocks.NewMockUserService(ctrl))
		status, err := svc.BindToLoggedInUser(context.Background(), uid,
			"auth-code", stateGen.Generate(uid))
		require.NoError(t, err)
		assert.Equal(t, BindStatusAlreadyLinked, status)
	})
}

func TestIdentityService_Unbind(t *testing.T) {
	t.Parallel()
	const uid = int64(42)

	t.Run("密码确认后删除绑定", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		userSvc := usermocks.NewMockUserService(ctrl)
		userSvc.EXPECT().Authenticate(gomock.Any(), uid, "pass").Return(nil)
		repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
		repo.EXPECT().Unbind(gomock.Any(), uid, domain.ProviderWechat).Return(nil)

		svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		err := svc.Unbind(context.Background(), uid, domain.ProviderWechat, "pass")
		assert.NoError(t, err)
	})

	t.Run("密码不对不碰数据", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		userSvc := usermocks.NewMockUserService(ctrl)
		userSvc.EXPECT().Authenticate(gomock.Any(), uid, "wrong").
			Return(user.ErrInvalidUserOrPassword)

		svc := newTestService(repomocks.NewMockThirdPartyIdentityRepository(ctrl),
			svcmocks.NewMockOAuth2Service(ctrl), userSvc)
		err := svc.Unbind(context.Background(), uid, domain.ProviderWechat, "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidUserOrPassword)
	})

	t.Run("不认识的平台", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc := newTestService(repomocks.NewMockThirdPartyIdentityRepository(ctrl),
			svcmocks.NewMockOAuth2Service(ctrl), usermocks.NewMockUserService(ctrl))
		err := svc.Unbind(context.Background(), uid, "qq", "pass")
		assert.ErrorIs(t, err, ErrInvalidProvider)
	})
}

func TestIdentityService_IsBound(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		mock func(ctrl *gomock.Controller) (repository.ThirdPartyIdentityRepository, user.UserService)
		want bool
	}{
		{
			name: "已绑定",
			mock: func(ctrl *gomock.Controller) (repository.ThirdPartyIdentityRepository, user.UserService) {
				userSvc := usermocks.NewMockUserService(ctrl)
				userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").
					Return(user.User{Id: 42}, nil)
				repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
				repo.EXPECT().FindByUserIdAndProvider(gomock.Any(), int64(42), domain.ProviderWechat).
					Return(domain.ThirdPartyIdentity{Id: 7, UserId: 42}, nil)
				return repo, userSvc
			},
			want: true,
		},
		{
			name: "用户存在但没绑定",
			mock: func(ctrl *gomock.Controller) (repository.ThirdPartyIdentityRepository, user.UserService) {
				userSvc := usermocks.NewMockUserService(ctrl)
				userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").
					Return(user.User{Id: 42}, nil)
				repo := repomocks.NewMockThirdPartyIdentityRepository(ctrl)
				repo.EXPECT().FindByUserIdAndProvider(gomock.Any(), int64(42), domain.ProviderWechat).
					Return(domain.ThirdPartyIdentity{}, repository.ErrIdentityNotFound)
				return repo, userSvc
			},
			want: false,
		},
		{
			name: "用户不存在视作没绑定",
			mock: func(ctrl *gomock.Controller) (repository.ThirdPartyIdentityRepository, user.UserService) {
				userSvc := usermocks.NewMockUserService(ctrl)
				userSvc.EXPECT().FindByUsername(gomock.Any(), "alice").
					Return(user.User{}, user.ErrUserNotFound)
				return repomocks.NewMockThirdPartyIdentityRepository(ctrl), userSvc
			},
			want: false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			repo, userSvc := tc.mock(ctrl)
			svc := newTestService(repo, svcmocks.NewMockOAuth2Service(ctrl), userSvc)
			got, err := svc.IsBound(context.Background(), "alice", domain.ProviderWechat)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
