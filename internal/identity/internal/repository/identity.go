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
	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/repository/dao"
)

var (
	ErrIdentityNotFound = dao.ErrIdentityNotFound
	ErrAlreadyLinked    = dao.ErrAlreadyLinked
)

//go:generate mockgen -source=./identity.go -package=repomocks -destination=mocks/identity.mock.go ThirdPartyIdentityRepository
type ThirdPartyIdentityRepository interface {
	// Upsert 落一条第三方账号快照，重复回调时刷新昵称和头像
	Upsert(ctx context.Context, t domain.ThirdPartyIdentity) (domain.ThirdPartyIdentity, error)
	FindById(ctx context.Context, id int64) (domain.ThirdPartyIdentity, error)
	FindByUnionId(ctx context.Context, provider domain.Provider, unionId string) (domain.ThirdPartyIdentity, error)
	FindByUserId(ctx context.Context, userId int64) ([]domain.ThirdPartyIdentity, error)
	FindByUserIdAndProvider(ctx context.Context, userId int64, provider domain.Provider) (domain.ThirdPartyIdentity, error)
	Bind(ctx context.Context, id int64, userId int64) error
	Unbind(ctx context.Context, userId int64, provider domain.Provider) error
}

type thirdPartyIdentityRepository struct {
	dao dao.ThirdPartyIdentityDAO
}

func NewThirdPartyIdentityRepository(d dao.ThirdPartyIdentityDAO) ThirdPartyIdentityRepository {
	return &thirdPartyIdentityRepository{dao: d}
}

func (r *thirdPartyIdentityRepository) Upsert(ctx context.Context, t domain.ThirdPartyIdentity) (domain.ThirdPartyIdentity, error) {
	res, err := r.dao.Upsert(ctx, r.toEntity(t))
	if err != nil {
		return domain.ThirdPartyIdentity{}, err
	}
	return r.toDomain(res), nil
}

func (r *thirdPartyIdentityRepository) FindById(ctx context.Context, id int64) (domain.ThirdPartyIdentity, error) {
	t, err := r.dao.FindById(ctx, id)
	if err != nil {
		return domain.ThirdPartyIdentity{}, err
	}
	return r.toDomain(t), nil
}

func (r *thirdPartyIdentityRepository) FindByUnionId(ctx context.Context, provider domain.Provider, unionId string) (domain.ThirdPartyIdentity, error) {
	t, err := r.dao.FindByUnionId(ctx, string(provider), unionId)
	if err != nil {
		return domain.ThirdPartyIdentity{}, err
	}
	return r.toDomain(t), nil
}

func (r *thirdPartyIdentityRepository) FindByUserId(ctx context.Context, userId int64) ([]domain.ThirdPartyIdentity, error) {
	ts, err := r.dao.FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	return slice.Map(ts, func(idx int, src dao.ThirdPartyIdentity) domain.ThirdPartyIdentity {
		return r.toDomain(src)
	}), nil
}

func (r *thirdPartyIdentityRepository) FindByUserIdAndProvider(ctx context.Context, userId int64, provider domain.Provider) (domain.ThirdPartyIdentity, error) {
	t, err := r.dao.FindByUserIdAndType(ctx, userId, string(provider))
	if err != nil {
		return domain.ThirdPartyIdentity{}, err
	}
	return r.toDomain(t), nil
}

func (r *thirdPartyIdentityRepository) Bind(ctx context.Context, id int64, userId int64) error {
	return r.dao.Bind(ctx, id, userId)
}

func (r *thirdPartyIdentityRepository) Unbind(ctx context.Context, userId int64, provider domain.Provider) error {
	return r.dao.Unbind(ctx, userId, string(provider))
}

func (r *thirdPartyIdentityRepository) toEntity(t domain.ThirdPartyIdentity) dao.ThirdPartyIdentity {
	return dao.ThirdPartyIdentity{
		Id:             t.Id,
		ThirdPartyType: string(t.Provider),
		OpenId:         t.OpenId,
		UnionId:        t.UnionId,
		UserId: sql.NullInt64{
			Int64: t.UserId,
			Valid: t.UserId > 0,
		},
		Name:      t.Name,
		HeadImage: t.HeadImage,
		Status:    t.Status,
	}
}

func (r *thirdPartyIdentityRepository) toDomain(t dao.ThirdPartyIdentity) domain.ThirdPartyIdentity {
	return domain.ThirdPartyIdentity{
		Id:        t.Id,
		Provider:  domain.Provider(t.ThirdPartyType),
		OpenId:    t.OpenId,
		UnionId:   t.UnionId,
		UserId:    t.UserId.Int64,
		Name:      t.Name,
		HeadImage: t.HeadImage,
		Status:    t.Status,
		Ctime:     t.Ctime,
		Utime:     t.Utime,
	}
}
