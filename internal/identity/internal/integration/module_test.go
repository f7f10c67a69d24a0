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

//go:build e2e

package integration

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/repository"
	"github.com/ecodeclub/passport/internal/identity/internal/repository/dao"
	testioc "github.com/ecodeclub/passport/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

// 绑定的竞态语义只依赖数据库，不需要真实的微信侧交互，
// 所以这里直接打到 repository 层验证。
func TestIdentityModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

type ModuleTestSuite struct {
	suite.Suite
	db   *egorm.Component
	repo repository.ThirdPartyIdentityRepository
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	err := dao.InitTables(s.db)
	require.NoError(s.T(), err)
	s.repo = repository.NewThirdPartyIdentityRepository(dao.NewGORMThirdPartyIdentityDAO(s.db))
}

func (s *ModuleTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `third_party_identities`").Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `third_party_identities`").Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TestUpsertRefreshesSnapshot() {
	t := s.T()
	first, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider:  domain.ProviderWechat,
		OpenId:    "open-1",
		UnionId:   "union-1",
		Name:      "旧昵称",
		HeadImage: "http://cdn/old.png",
		Status:    domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	require.NotZero(t, first.Id)

	// 同一个 unionId 再次回调，昵称头像被刷新，不产生新行
	second, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider:  domain.ProviderWechat,
		OpenId:    "open-1",
		UnionId:   "union-1",
		Name:      "新昵称",
		HeadImage: "http://cdn/new.png",
		Status:    domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, "新昵称", second.Name)
	assert.Equal(t, "http://cdn/new.png", second.HeadImage)

	var count int64
	require.NoError(t, s.db.Table("third_party_identities").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func (s *ModuleTestSuite) TestUpsertKeepsUserId() {
	t := s.T()
	created, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-2",
		UnionId:  "union-2",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, s.repo.Bind(context.Background(), created.Id, 123))

	// 已绑定之后的回调只刷新资料，不动 user_id
	after, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-2",
		UnionId:  "union-2",
		Name:     "回调昵称",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(123), after.UserId)
}

func (s *ModuleTestSuite) TestConcurrentBind() {
	t := s.T()
	created, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-3",
		UnionId:  "union-3",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)

	const users = 8
	var succeeded int64
	var eg errgroup.Group
	for i := 0; i < users; i++ {
		uid := int64(1000 + i)
		eg.Go(func() error {
			err := s.repo.Bind(context.Background(), created.Id, uid)
			if err == nil {
				atomic.AddInt64(&succeeded, 1)
				return nil
			}
			if errors.Is(err, repository.ErrAlreadyLinked) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, eg.Wait())
	// 只有一个用户抢到绑定
	assert.Equal(t, int64(1), succeeded)

	after, err := s.repo.FindById(context.Background(), created.Id)
	require.NoError(t, err)
	assert.True(t, after.Linked())
}

func (s *ModuleTestSuite) TestBindTwice() {
	t := s.T()
	created, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-4",
		UnionId:  "union-4",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, s.repo.Bind(context.Background(), created.Id, 11))
	// 重复绑定，包括自己重复绑，都报已被占用
	err = s.repo.Bind(context.Background(), created.Id, 11)
	assert.ErrorIs(t, err, repository.ErrAlreadyLinked)
	err = s.repo.Bind(context.Background(), created.Id, 12)
	assert.ErrorIs(t, err, repository.ErrAlreadyLinked)
}

func (s *ModuleTestSuite) TestUnbind() {
	t := s.T()
	created, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-5",
		UnionId:  "union-5",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, s.repo.Bind(context.Background(), created.Id, 21))

	require.NoError(t, s.repo.Unbind(context.Background(), 21, domain.ProviderWechat))
	_, err = s.repo.FindByUserIdAndProvider(context.Background(), 21, domain.ProviderWechat)
	assert.ErrorIs(t, err, repository.ErrIdentityNotFound)

	// 解绑一个不存在的绑定不算错误
	require.NoError(t, s.repo.Unbind(context.Background(), 21, domain.ProviderWechat))
}

func (s *ModuleTestSuite) TestFindByUserId() {
	t := s.T()
	wechat, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWechat,
		OpenId:   "open-6",
		UnionId:  "union-6",
		Name:     "微信昵称",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	weibo, err := s.repo.Upsert(context.Background(), domain.ThirdPartyIdentity{
		Provider: domain.ProviderWeibo,
		OpenId:   "wb-open-6",
		UnionId:  "wb-union-6",
		Name:     "微博昵称",
		Status:   domain.IdentityStatusActive,
	})
	require.NoError(t, err)
	require.NoError(t, s.repo.Bind(context.Background(), wechat.Id, 31))
	require.NoError(t, s.repo.Bind(context.Background(), weibo.Id, 31))

	links, err := s.repo.FindByUserId(context.Background(), 31)
	require.NoError(t, err)
	assert.Len(t, links, 2)
}
