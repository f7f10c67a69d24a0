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

	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/repository"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/gotomicro/ego/core/elog"
	uuid "github.com/lithammer/shortuuid/v4"
)

// BindStatus 绑定回调的结果，数值会拼进重定向地址，是对外契约
type BindStatus int

const (
	// BindStatusBound 本次绑定成功
	BindStatusBound BindStatus = 1
	// BindStatusBadState state 校验失败，疑似 CSRF，什么都没做
	BindStatusBadState BindStatus = 2
	// BindStatusAlreadyLinked 该第三方账号已经绑定了本站账号
	BindStatusAlreadyLinked BindStatus = 3
)

var (
	ErrIdentityNotFound = repository.ErrIdentityNotFound
	ErrAlreadyLinked    = repository.ErrAlreadyLinked
	ErrInvalidProvider  = errors.New("不支持的第三方平台")
)

// LoginCallbackResult 登录回调的去向
type LoginCallbackResult struct {
	// NeedBind 为 true 时 IdentityId 有效，
	// 前端要带着它去注册或绑定页继续流程
	NeedBind   bool
	IdentityId int64
	// User 已绑定时有效
	User user.User
}

//go:generate mockgen -source=./identity.go -package=svcmocks -destination=mocks/identity.mock.go Service
type Service interface {
	// LoginAuthURL 登录入口的扫码地址，state 只是随机占位
	LoginAuthURL() string
	// BindAuthURL 绑定入口的扫码地址，state 与登录用户强绑定
	BindAuthURL(uid int64) string
	// HandleLoginCallback 登录回调：换取第三方信息并落快照，
	// 已绑定的直接返回用户，没绑定的让前端去注册或绑定页
	HandleLoginCallback(ctx context.Context, authCode string) (LoginCallbackResult, error)
	// CompleteBind 注册或绑定页提交：loginName 存在则校验密码，
	// 不存在则创建新用户，然后把第三方账号绑上去
	CompleteBind(ctx context.Context, identityId int64, loginName, password string) (user.User, error)
	// BindToLoggedInUser 已登录用户主动发起的绑定回调
	BindToLoggedInUser(ctx context.Context, uid int64, authCode, state string) (BindStatus, error)
	// Unbind 解绑前先用密码做二次确认，绑定关系不存在也算成功
	Unbind(ctx context.Context, uid int64, provider domain.Provider, password string) error
	ListLinks(ctx context.Context, uid int64) ([]domain.ThirdPartyIdentity, error)
	// IsBound 查询某个登录名有没有绑定指定平台
	IsBound(ctx context.Context, loginName string, provider domain.Provider) (bool, error)
	FindByUnionId(ctx context.Context, provider domain.Provider, unionId string) (domain.ThirdPartyIdentity, error)
}

type identityService struct {
	repo     repository.ThirdPartyIdentityRepository
	oauth2   OAuth2Service
	stateGen *StateTokenGenerator
	userSvc  user.UserService
	logger   *elog.Component
}

func NewService(repo repository.ThirdPartyIdentityRepository,
	oauth2 OAuth2Service,
	stateGen *StateTokenGenerator,
	userSvc user.UserService) Service {
	return &identityService{
		repo:     repo,
		oauth2:   oauth2,
		stateGen: stateGen,
		userSvc:  userSvc,
		logger:   elog.DefaultLogger,
	}
}

func (s *identityService) LoginAuthURL() string {
	return s.oauth2.AuthURL(uuid.New())
}

func (s *identityService) BindAuthURL(uid int64) string {
	return s.oauth2.AuthURL(s.stateGen.Generate(uid))
}

func (s *identityService) HandleLoginCallback(ctx context.Context, authCode string) (LoginCallbackResult, error) {
	identity, err := s.exchangeAndUpsert(ctx, authCode)
	if err != nil {
		return LoginCallbackResult{}, err
	}
	if !identity.Linked() {
		return LoginCallbackResult{
			NeedBind:   true,
			IdentityId: identity.Id,
		}, nil
	}
	u, err := s.userSvc.Profile(ctx, identity.UserId)
	if err != nil {
		return LoginCallbackResult{}, err
	}
	return LoginCallbackResult{User: u}, nil
}

// exchangeAndUpsert 用授权码换取用户信息并刷新快照。
// 每次回调都会刷新昵称和头像，第三方侧改了资料这边跟着变。
func (s *identityService) exchangeAndUpsert(ctx context.Context, authCode string) (domain.ThirdPartyIdentity, error) {
	info, err := s.oauth2.Exchange(ctx, authCode)
	if err != nil {
		return domain.ThirdPartyIdentity{}, err
	}
	return s.repo.Upsert(ctx, domain.ThirdPartyIdentity{
		Provider:  domain.ProviderWechat,
		OpenId:    info.OpenId,
		UnionId:   info.UnionId,
		Name:      info.Nickname,
		HeadImage: info.HeadImageURL,
		Status:    domain.IdentityStatusActive,
	})
}

func (s *identityService) CompleteBind(ctx context.Context, identityId int64, loginName, password string) (user.User, error) {
	identity, err := s.repo.FindById(ctx, identityId)
	if err != nil {
		return user.User{}, err
	}
	if identity.Linked() {
		return user.User{}, ErrAlreadyLinked
	}
	u, err := s.userSvc.FindByUsername(ctx, loginName)
	switch {
	case err == nil:
		if !s.userSvc.VerifyPassword(u, password) {
			return user.User{}, user.ErrInvalidUserOrPassword
		}
	case errors.Is(err, user.ErrUserNotFound):
		u, err = s.userSvc.Create(ctx, user.User{
			Username: loginName,
			Password: password,
			Nickname: identity.Name,
			Avatar:   identity.HeadImage,
		})
		if err != nil {
			return user.User{}, err
		}
	default:
		return user.User{}, err
	}
	// 绑定写入是这条链路的持久化边界，
	// 条件更新保证并发注册绑定时只有一个能成功
	err = s.repo.Bind(ctx, identity.Id, u.Id)
	if err != nil {
		return user.User{}, err
	}
	u.Password = ""
	return u, nil
}

func (s *identityService) BindToLoggedInUser(ctx context.Context, uid int64, authCode, state string) (BindStatus, error) {
	if !s.stateGen.Verify(uid, state) {
		// 校验不过一定不碰第三方接口，也不落任何数据
		return BindStatusBadState, nil
	}
	identity, err := s.exchangeAndUpsert(ctx, authCode)
	if err != nil {
		return 0, err
	}
	if identity.Linked() {
		return BindStatusAlreadyLinked, nil
	}
	err = s.repo.Bind(ctx, identity.Id, uid)
	if errors.Is(err, repository.ErrAlreadyLinked) {
		return BindStatusAlreadyLinked, nil
	}
	if err != nil {
		return 0, err
	}
	return BindStatusBound, nil
}

func (s *identityService) Unbind(ctx context.Context, uid int64, provider domain.Provider, password string) error {
	if !provider.Valid() {
		return ErrInvalidProvider
	}
	err := s.userSvc.Authenticate(ctx, uid, password)
	if err != nil {
		return err
	}
	return s.repo.Unbind(ctx, uid, provider)
}

func (s *identityService) ListLinks(ctx context.Context, uid int64) ([]domain.ThirdPartyIdentity, error) {
	return s.repo.FindByUserId(ctx, uid)
}

func (s *identityService) IsBound(ctx context.Context, loginName string, provider domain.Provider) (bool, error) {
	if !provider.Valid() {
		return false, ErrInvalidProvider
	}
	u, err := s.userSvc.FindByUsername(ctx, loginName)
	if errors.Is(err, user.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_, err = s.repo.FindByUserIdAndProvider(ctx, u.Id, provider)
	if errors.Is(err, repository.ErrIdentityNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *identityService) FindByUnionId(ctx context.Context, provider domain.Provider, unionId string) (domain.ThirdPartyIdentity, error) {
	return s.repo.FindByUnionId(ctx, provider, unionId)
}
