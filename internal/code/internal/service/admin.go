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

	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/repository"
)

var (
	ErrInvalidQuantity   = errors.New("数量超出范围")
	ErrInvalidCodeStatus = errors.New("不支持的目标状态")
)

const (
	// 不传数量时默认生成的个数
	defaultBatchCreate = 10
	// 一次批量生成的数量上限，web 层也会校验，这里再兜一次底
	maxBatchCreate = 50
	// 一次批量改状态的数量上限
	maxBatchUpdate = 100
)

//go:generate mockgen -source=./admin.go -package=svcmocks -destination=mocks/admin.mock.go AdminService
type AdminService interface {
	// BatchCreate 按模板生成 qty 个互不相同的激活码，返回生成的码。
	// qty 为 0 时默认生成 10 个，否则必须在 [1, 50] 内。
	BatchCreate(ctx context.Context, qty int, tmpl domain.CodeTemplate) ([]string, error)
	// BatchUpdate 把 codes 批量置为 status，目标状态只能是未使用或已禁用。
	// 不存在的 code 静默忽略，返回实际更新的行数。
	BatchUpdate(ctx context.Context, codes []string, status domain.CodeStatus, remark string) (int64, error)
	// AdjustLimitCount 原子调整剩余次数，delta 可正可负，返回命中的行数
	AdjustLimitCount(ctx context.Context, code string, delta int64) (int64, error)
	FindByCode(ctx context.Context, code string) (domain.ActivationCode, error)
	List(ctx context.Context, f domain.CodeFilter, offset, limit int) ([]domain.ActivationCode, int64, error)
	ListUsageRecords(ctx context.Context, f domain.UsageFilter, offset, limit int) ([]domain.CodeUsageRecord, int64, error)
}

type adminService struct {
	repo          repository.ActivationCodeRepository
	codeGenerator func() string
}

func NewAdminService(repo repository.ActivationCodeRepository,
	codeGenerator func() string) AdminService {
	return &adminService{
		repo:          repo,
		codeGenerator: codeGenerator,
	}
}

func (s *adminService) BatchCreate(ctx context.Context, qty int, tmpl domain.CodeTemplate) ([]string, error) {
	if qty == 0 {
		qty = defaultBatchCreate
	}
	if qty < 1 || qty > maxBatchCreate {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	codes := make([]string, 0, qty)
	for len(codes) < qty {
		code, err := s.createOne(ctx, tmpl)
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// createOne 生成并落库一个码，唯一索引冲突就换一个码重试
func (s *adminService) createOne(ctx context.Context, tmpl domain.CodeTemplate) (string, error) {
	for i := 0; i < maxGenerateRetries; i++ {
		c := domain.ActivationCode{
			Code:               s.codeGenerator(),
			Status:             domain.CodeStatusUnused,
			LimitCount:         tmpl.LimitCount,
			StartEffectiveDate: tmpl.StartEffectiveDate,
			EndEffectiveDate:   tmpl.EndEffectiveDate,
			Remark:             tmpl.Remark,
		}
		_, err := s.repo.Create(ctx, c)
		if err == nil {
			return c.Code, nil
		}
		if !errors.Is(err, repository.ErrCodeDuplicate) {
			return "", err
		}
	}
	return "", fmt.Errorf("生成激活码反复冲突: %w", repository.ErrCodeDuplicate)
}

func (s *adminService) BatchUpdate(ctx context.Context, codes []string, status domain.CodeStatus, remark string) (int64, error) {
	if len(codes) < 1 || len(codes) > maxBatchUpdate {
		return 0, fmt.Errorf("%w: %d", ErrInvalidQuantity, len(codes))
	}
	// 已使用是兑换的终态，管理端只能在未使用和已禁用之间切换
	if status != domain.CodeStatusUnused && status != domain.CodeStatusDisabled {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCodeStatus, status)
	}
	return s.repo.BatchUpdateStatus(ctx, codes, status, remark)
}

func (s *adminService) AdjustLimitCount(ctx context.Context, code string, delta int64) (int64, error) {
	return s.repo.IncrLimitCount(ctx, code, delta)
}

func (s *adminService) FindByCode(ctx context.Context, code string) (domain.ActivationCode, error) {
	return s.repo.FindByCode(ctx, code)
}

func (s *adminService) List(ctx context.Context, f domain.CodeFilter, offset, limit int) ([]domain.ActivationCode, int64, error) {
	return s.repo.List(ctx, f, offset, limit)
}

func (s *adminService) ListUsageRecords(ctx context.Context, f domain.UsageFilter, offset, limit int) ([]domain.CodeUsageRecord, int64, error) {
	return s.repo.ListUsageRecords(ctx, f, offset, limit)
}
