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

package repository

import (
	"context"
	"database/sql"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/repository/cache"
	"github.com/ecodeclub/passport/internal/code/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrCodeNotFound  = dao.ErrCodeNotFound
	ErrCodeDuplicate = dao.ErrCodeDuplicate
	ErrCodeExhausted = dao.ErrCodeExhausted
)

//go:generate mockgen -source=./code.go -package=repomocks -destination=mocks/code.mock.go ActivationCodeRepository
type ActivationCodeRepository interface {
	Create(ctx context.Context, c domain.ActivationCode) (int64, error)
	FindByCode(ctx context.Context, code string) (domain.ActivationCode, error)
	// FindInviteCodeByOwner 查属主的邀请码，优先走缓存。
	// 缓存里放的是完整的落库记录。
	FindInviteCodeByOwner(ctx context.Context, ownerId int64) (domain.ActivationCode, error)
	BatchUpdateStatus(ctx context.Context, codes []string, status domain.CodeStatus, remark string) (int64, error)
	Redeem(ctx context.Context, code string, userId int64, username string) error
	IncrLimitCount(ctx context.Context, code string, delta int64) (int64, error)
	List(ctx context.Context, f domain.CodeFilter, offset, limit int) ([]domain.ActivationCode, int64, error)
	ListUsageRecords(ctx context.Context, f domain.UsageFilter, offset, limit int) ([]domain.CodeUsageRecord, int64, error)
}

type activationCodeRepository struct {
	dao    dao.ActivationCodeDAO
	cache  cache.InviteCodeCache
	logger *elog.Component
}

func NewActivationCodeRepository(d dao.ActivationCodeDAO, c cache.InviteCodeCache) ActivationCodeRepository {
	return &activationCodeRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *activationCodeRepository) Create(ctx context.Context, c domain.ActivationCode) (int64, error) {
	// 邀请码缓存在读路径回填，这里不预热：
	// 入库时间戳由 dao 生成，预热会缓存一条残缺记录
	return r.dao.Insert(ctx, r.toEntity(c))
}

func (r *activationCodeRepository) FindByCode(ctx context.Context, code string) (domain.ActivationCode, error) {
	c, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.ActivationCode{}, err
	}
	return r.toDomain(c), nil
}

func (r *activationCodeRepository) FindInviteCodeByOwner(ctx context.Context, ownerId int64) (domain.ActivationCode, error) {
	res, err := r.cache.GetInviteCode(ctx, ownerId)
	if err == nil && res.Id > 0 {
		return res, nil
	}
	c, err := r.dao.FindByOwnerId(ctx, ownerId)
	if err != nil {
		return domain.ActivationCode{}, err
	}
	res = r.toDomain(c)
	if e := r.cache.SetInviteCode(ctx, res); e != nil {
		r.logger.Error("缓存邀请码失败", elog.FieldErr(e))
	}
	return res, nil
}

func (r *activationCodeRepository) BatchUpdateStatus(ctx context.Context, codes []string, status domain.CodeStatus, remark string) (int64, error) {
	return r.dao.BatchUpdateStatus(ctx, codes, status.ToUint8(), remark)
}

func (r *activationCodeRepository) Redeem(ctx context.Context, code string, userId int64, username string) error {
	return r.dao.Redeem(ctx, code, userId, username)
}

func (r *activationCodeRepository) IncrLimitCount(ctx context.Context, code string, delta int64) (int64, error) {
	return r.dao.IncrLimitCount(ctx, code, delta)
}

func (r *activationCodeRepository) List(ctx context.Context, f domain.CodeFilter, offset, limit int) ([]domain.ActivationCode, int64, error) {
	df := r.toFilterEntity(f)
	total, err := r.dao.Count(ctx, df)
	if err != nil {
		return nil, 0, err
	}
	cs, err := r.dao.List(ctx, df, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(cs, func(idx int, src dao.ActivationCode) domain.ActivationCode {
		return r.toDomain(src)
	}), total, nil
}

func (r *activationCodeRepository) ListUsageRecords(ctx context.Context, f domain.UsageFilter, offset, limit int) ([]domain.CodeUsageRecord, int64, error) {
	df := dao.UsageFilter{Code: f.Code, Username: f.Username}
	total, err := r.dao.CountUsageRecords(ctx, df)
	if err != nil {
		return nil, 0, err
	}
	rs, err := r.dao.ListUsageRecords(ctx, df, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(rs, func(idx int, src dao.CodeUsageRecord) domain.CodeUsageRecord {
		return domain.CodeUsageRecord{
			Id:       src.Id,
			Code:     src.Code,
			UserId:   src.UserId,
			Username: src.Username,
			Ctime:    src.Ctime,
		}
	}), total, nil
}

func (r *activationCodeRepository) toFilterEntity(f domain.CodeFilter) dao.CodeFilter {
	var status *uint8
	if f.Status != nil {
		s := f.Status.ToUint8()
		status = &s
	}
	return dao.CodeFilter{
		Status:          status,
		Keywords:        f.Keywords,
		BeginCreateDate: f.BeginCreateDate,
		EndCreateDate:   f.EndCreateDate,
	}
}

func (r *activationCodeRepository) toEntity(c domain.ActivationCode) dao.ActivationCode {
	return dao.ActivationCode{
		Code:          c.Code,
		Status:        c.Status.ToUint8(),
		LimitCount:    c.LimitCount,
		Remark:        c.Remark,
		OwnerUsername: c.OwnerUsername,
		StartEffectiveDate: sql.NullInt64{
			Int64: c.StartEffectiveDate,
			Valid: c.StartEffectiveDate > 0,
		},
		EndEffectiveDate: sql.NullInt64{
			Int64: c.EndEffectiveDate,
			Valid: c.EndEffectiveDate > 0,
		},
		OwnerId: sql.NullInt64{
			Int64: c.OwnerId,
			Valid: c.OwnerId > 0,
		},
	}
}

func (r *activationCodeRepository) toDomain(c dao.ActivationCode) domain.ActivationCode {
	return domain.ActivationCode{
		Id:                 c.Id,
		Code:               c.Code,
		Status:             domain.CodeStatus(c.Status),
		LimitCount:         c.LimitCount,
		StartEffectiveDate: c.StartEffectiveDate.Int64,
		EndEffectiveDate:   c.EndEffectiveDate.Int64,
		Remark:             c.Remark,
		OwnerId:            c.OwnerId.Int64,
		OwnerUsername:      c.OwnerUsername,
		Ctime:              c.Ctime,
		Utime:              c.Utime,
	}
}
