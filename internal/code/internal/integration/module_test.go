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
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/ecodeclub/passport/internal/code"
	"github.com/ecodeclub/passport/internal/code/internal/domain"
	testioc "github.com/ecodeclub/passport/internal/test/ioc"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/ego-component/egorm"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

func TestCodeModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

type ModuleTestSuite struct {
	suite.Suite
	db       *egorm.Component
	svc      code.Service
	adminSvc code.AdminService
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	ec := testioc.InitCache()
	q := testioc.InitMQ()
	userModule := user.InitModule(s.db, ec, q)
	module := code.InitModule(s.db, ec, userModule.Svc)
	s.svc = module.Svc
	s.adminSvc = module.AdminSvc
}

func (s *ModuleTestSuite) TearDownSuite() {
	err := s.db.Exec("DROP TABLE `activation_codes`").Error
	require.NoError(s.T(), err)
	err = s.db.Exec("DROP TABLE `code_usage_records`").Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TearDownTest() {
	err := s.db.Exec("TRUNCATE TABLE `activation_codes`").Error
	require.NoError(s.T(), err)
	err = s.db.Exec("TRUNCATE TABLE `code_usage_records`").Error
	require.NoError(s.T(), err)
}

func (s *ModuleTestSuite) TestBatchCreate() {
	t := s.T()
	codes, err := s.adminSvc.BatchCreate(context.Background(), 50, domain.CodeTemplate{
		LimitCount: 2,
		Remark:     "内测第一批",
	})
	require.NoError(t, err)
	require.Len(t, codes, 50)
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		require.Len(t, c, 8)
		_, ok := seen[c]
		require.False(t, ok)
		seen[c] = struct{}{}
	}
	var count int64
	err = s.db.Table("activation_codes").Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(50), count)
}

// TestConcurrentRedeem limitCount=1 的码被 N 个用户抢，恰好一个成功
func (s *ModuleTestSuite) TestConcurrentRedeem() {
	t := s.T()
	codes, err := s.adminSvc.BatchCreate(context.Background(), 1, domain.CodeTemplate{
		LimitCount: 1,
	})
	require.NoError(t, err)
	target := codes[0]

	const concurrency = 10
	var succeeded, ineligible atomic.Int64
	var eg errgroup.Group
	for i := 0; i < concurrency; i++ {
		uid := int64(i + 1)
		eg.Go(func() error {
			err := s.svc.Redeem(context.Background(), uid,
				fmt.Sprintf("user-%d", uid), target)
			switch {
			case err == nil:
				succeeded.Add(1)
				return nil
			case errors.Is(err, code.ErrCodeIneligible):
				ineligible.Add(1)
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, eg.Wait())
	require.Equal(t, int64(1), succeeded.Load())
	require.Equal(t, int64(concurrency-1), ineligible.Load())

	c, err := s.adminSvc.FindByCode(context.Background(), target)
	require.NoError(t, err)
	require.Equal(t, domain.CodeStatusUsed, c.Status)
	require.Equal(t, int64(0), c.LimitCount)

	// 流水数量与成功兑换次数一致
	_, total, err := s.adminSvc.ListUsageRecords(context.Background(),
		domain.UsageFilter{Code: target}, 0, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
}

// TestConcurrentRedeemMultiUse limitCount=3，成功恰好 3 次
func (s *ModuleTestSuite) TestConcurrentRedeemMultiUse() {
	t := s.T()
	codes, err := s.adminSvc.BatchCreate(context.Background(), 1, domain.CodeTemplate{
		LimitCount: 3,
	})
	require.NoError(t, err)
	target := codes[0]

	const concurrency = 10
	var succeeded atomic.Int64
	var eg errgroup.Group
	for i := 0; i < concurrency; i++ {
		uid := int64(i + 1)
		eg.Go(func() error {
			err := s.svc.Redeem(context.Background(), uid,
				fmt.Sprintf("user-%d", uid), target)
			if err == nil {
				succeeded.Add(1)
				return nil
			}
			if errors.Is(err, code.ErrCodeIneligible) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, eg.Wait())
	require.Equal(t, int64(3), succeeded.Load())

	c, err := s.adminSvc.FindByCode(context.Background(), target)
	require.NoError(t, err)
	require.Equal(t, domain.CodeStatusUsed, c.Status)
	require.Equal(t, int64(0), c.LimitCount)
}

// TestConcurrentFindOrCreate 并发为同一用户生成邀请码，收敛到同一个码
func (s *ModuleTestSuite) TestConcurrentFindOrCreate() {
	t := s.T()
	const (
		uid         = int64(999)
		username    = "invite-owner"
		concurrency = 5
	)
	results := make([]string, concurrency)
	var eg errgroup.Group
	for i := 0; i < concurrency; i++ {
		i := i
		eg.Go(func() error {
			c, err := s.svc.FindOrCreateUserCode(context.Background(), uid, username)
			if err != nil {
				return err
			}
			results[i] = c.Code
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	for i := 1; i < concurrency; i++ {
		require.Equal(t, results[0], results[i])
	}
	var count int64
	err := s.db.Table("activation_codes").
		Where("owner_id = ?", uid).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func (s *ModuleTestSuite) TestBatchUpdateDisableThenRedeem() {
	t := s.T()
	codes, err := s.adminSvc.BatchCreate(context.Background(), 2, domain.CodeTemplate{
		LimitCount: 1,
	})
	require.NoError(t, err)

	// 混入一个不存在的码，应当被静默忽略
	affected, err := s.adminSvc.BatchUpdate(context.Background(),
		append(codes, "no-such1"), domain.CodeStatusDisabled, "测试禁用")
	require.NoError(t, err)
	require.Equal(t, int64(2), affected)

	err = s.svc.Redeem(context.Background(), 1, "user-1", codes[0])
	require.ErrorIs(t, err, code.ErrCodeIneligible)

	// 解禁之后又能兑换了
	_, err = s.adminSvc.BatchUpdate(context.Background(), codes[:1],
		domain.CodeStatusUnused, "解除禁用")
	require.NoError(t, err)
	err = s.svc.Redeem(context.Background(), 1, "user-1", codes[0])
	require.NoError(t, err)
}

func (s *ModuleTestSuite) TestAdjustLimitCount() {
	t := s.T()
	codes, err := s.adminSvc.BatchCreate(context.Background(), 1, domain.CodeTemplate{
		LimitCount: 1,
	})
	require.NoError(t, err)
	target := codes[0]

	affected, err := s.adminSvc.AdjustLimitCount(context.Background(), target, 4)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	c, err := s.adminSvc.FindByCode(context.Background(), target)
	require.NoError(t, err)
	require.Equal(t, int64(5), c.LimitCount)
}
