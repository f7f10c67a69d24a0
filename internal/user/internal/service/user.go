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

	"github.com/ecodeclub/passport/internal/user/internal/domain"
	"github.com/ecodeclub/passport/internal/user/internal/event"
	"github.com/ecodeclub/passport/internal/user/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound  = repository.ErrUserNotFound
	ErrUserDuplicate = repository.ErrUserDuplicate
	// ErrInvalidUserOrPassword 账号不存在与密码不对共用一个错误，
	// 不给攻击者区分两种情况的机会
	ErrInvalidUserOrPassword = errors.New("用户名或密码错误")
)

// 注册事件属于尽力而为的旁路任务，失败不影响主流程，但要可观测
var registrationEventFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "user_registration_event_failures_total",
	Help: "Total number of failed registration event publications",
})

//go:generate mockgen -source=./user.go -package=svcmocks -destination=mocks/user.mock.go UserService
type UserService interface {
	Profile(ctx context.Context, id int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	// Login 校验登录名与密码，返回对应的用户
	Login(ctx context.Context, username, password string) (domain.User, error)
	// Create 创建一个新用户，username 唯一
	Create(ctx context.Context, u domain.User) (domain.User, error)
	// VerifyPassword 校验明文密码与用户的密码是否匹配
	VerifyPassword(u domain.User, password string) bool
	// Authenticate 敏感操作前的二次确认，
	// 校验失败统一返回 ErrInvalidUserOrPassword
	Authenticate(ctx context.Context, id int64, password string) error

	// UpdateNonSensitiveInfo 更新非敏感数据
	// 你可以在这里进一步补充究竟哪些数据会被更新
	UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error
}

type userService struct {
	repo     repository.UserRepository
	producer *event.RegistrationEventProducer
	logger   *elog.Component
}

func NewUserService(repo repository.UserRepository, p *event.RegistrationEventProducer) UserService {
	return &userService{
		repo:     repo,
		producer: p,
		logger:   elog.DefaultLogger,
	}
}

func (svc *userService) UpdateNonSensitiveInfo(ctx context.Context, user domain.User) error {
	// 不让修改序列号和登录名
	user.SN = ""
	user.Username = ""
	user.Password = ""
	return svc.repo.Update(ctx, user)
}

func (svc *userService) Profile(ctx context.Context,
	id int64) (domain.User, error) {
	// 在系统内部，基本上都是用 ID 的
	u, err := svc.repo.FindById(ctx, id)
	u.Password = ""
	return u, err
}

func (svc *userService) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return svc.repo.FindByUsername(ctx, username)
}

func (svc *userService) Login(ctx context.Context, username, password string) (domain.User, error) {
	u, err := svc.repo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	if err != nil {
		return domain.User{}, err
	}
	if !svc.VerifyPassword(u, password) {
		return domain.User{}, ErrInvalidUserOrPassword
	}
	u.Password = ""
	return u, nil
}

func (svc *userService) VerifyPassword(u domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (svc *userService) Authenticate(ctx context.Context, id int64, password string) error {
	u, err := svc.repo.FindByIdWithPassword(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrInvalidUserOrPassword
	}
	if err != nil {
		return err
	}
	if !svc.VerifyPassword(u, password) {
		return ErrInvalidUserOrPassword
	}
	return nil
}

func (svc *userService) Create(ctx context.Context, u domain.User) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	sn := shortuuid.New()
	u.SN = sn
	u.Password = string(hash)
	if u.Nickname == "" {
		u.Nickname = u.Username
	}
	id, err := svc.repo.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	u.Id = id
	u.Password = ""

	// 发送注册成功消息
	evt := event.RegistrationEvent{Uid: id, Username: u.Username}
	if e := svc.producer.Produce(ctx, evt); e != nil {
		registrationEventFailures.Inc()
		svc.logger.Error("发送注册成功消息失败",
			elog.FieldErr(e),
			elog.FieldKey("event"),
			elog.FieldValueAny(evt),
		)
	}
	return u, nil
}
