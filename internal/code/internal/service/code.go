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
	"fmt"
	"time"

	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/repository"
)

var (
	// ErrCodeIneligible 兑换侧对外只有这一个错误：
	// 码不存在、状态不对、不在有效期、次数用完、输给并发兑换者，
	// 一律归到这里，不暴露具体原因
	ErrCodeIneligible = errors.New("激活码无法兑换")
)

// 找不到未占用的随机码时的重试上限。
// 8 位 62 进制的空间远大于激活码总量，连撞这么多次基本可以断定出了别的问题
const maxGenerateRetries = 10

//go:generate mockgen -source=./code.go -package=svcmocks -destination=mocks/code.mock.go Service
type Service interface {
	// Redeem 以 user 的身份兑换 code，恰好消耗一次配额。
	// 所有不可兑换的情形都返回 ErrCodeIneligible。
	Redeem(ctx context.Context, userId int64, username string, code string) error
	// FindOrCreateUserCode 返回用户的专属邀请码，没有就生成一个。
	// 并发调用收敛到同一个码。
	FindOrCreateUserCode(ctx context.Context, userId int64, username string) (domain.ActivationCode, error)
}

type service struct {
	repo repository.ActivationCodeRepository
	// codeGenerator 生成候选码，不保证唯一，唯一性由存储层的唯一索引兜底
	codeGenerator func() string
	// inviteLimitCount 新建邀请码的默认可兑换次数
	inviteLimitCount int64
}

func NewService(repo repository.ActivationCodeRepository,
	codeGenerator func() string,
	inviteLimitCount int64) Service {
	return &service{
		repo:             repo,
		codeGenerator:    codeGenerator,
		inviteLimitCount: inviteLimitCount,
	}
}

func (s *service) Redeem(ctx context.Context, userId int64, username string, code string) error {
	c, err := s.repo.FindByCode(ctx, code)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return ErrCodeIneligible
	}
	if err != nil {
		return err
	}
	if !c.Redeemable(time.Now().UnixMilli()) {
		return ErrCodeIneligible
	}
	err = s.repo.Redeem(ctx, code, userId, username)
	if errors.Is(err, repository.ErrCodeExhausted) {
		// 预检到扣减之间被别人抢先了，对外与预检失败没有区别
		return ErrCodeIneligible
	}
	return err
}

func (s *service) FindOrCreateUserCode(ctx context.Context, userId int64, username string) (domain.ActivationCode, error) {
	c, err := s.repo.FindInviteCodeByOwner(ctx, userId)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrCodeNotFound) {
		return domain.ActivationCode{}, err
	}
	for i := 0; i < maxGenerateRetries; i++ {
		c = domain.ActivationCode{
			Code:          s.codeGenerator(),
			Status:        domain.CodeStatusUnused,
			LimitCount:    s.inviteLimitCount,
			OwnerId:       userId,
			OwnerUsername: username,
		}
		id, err := s.repo.Create(ctx, c)
		if err == nil {
			c.Id = id
			return c, nil
		}
		if !errors.Is(err, repository.ErrCodeDuplicate) {
			return domain.ActivationCode{}, err
		}
		// 唯一索引冲突有两种可能：并发请求先建好了这个用户的邀请码，
		// 或者随机码撞上了已有的码。先查前者，查到就直接用赢家的
		winner, ferr := s.repo.FindInviteCodeByOwner(ctx, userId)
		if ferr == nil {
			return winner, nil
		}
		if !errors.Is(ferr, repository.ErrCodeNotFound) {
			return domain.ActivationCode{}, ferr
		}
	}
	return domain.ActivationCode{}, fmt.Errorf("生成邀请码反复冲突: %w", repository.ErrCodeDuplicate)
}
