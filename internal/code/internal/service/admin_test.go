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
	"fmt"
	"testing"

	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/repository"
	repomocks "github.com/ecodeclub/passport/internal/code/internal/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAdminService_BatchCreate(t *testing.T) {
	t.Parallel()
	tmpl := domain.CodeTemplate{
		LimitCount: 3,
		Remark:     "内测资格",
	}
	t.Run("不传数量默认生成 10 个", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockActivationCodeRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			Times(defaultBatchCreate).Return(int64(1), nil)
		seq := 0
		svc := NewAdminService(repo, func() string {
			seq++
			return fmt.Sprintf("code%04d", seq)
		})
		codes, err := svc.BatchCreate(context.Background(), 0, tmpl)
		require.NoError(t, err)
		assert.Len(t, codes, defaultBatchCreate)
	})
	t.Run("数量为负直接拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc := NewAdminService(repomocks.NewMockActivationCodeRepository(ctrl), nil)
		_, err := svc.BatchCreate(context.Background(), -1, tmpl)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
	t.Run("数量超过 50 直接拒绝", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		svc := NewAdminService(repomocks.NewMockActivationCodeRepository(ctrl), nil)
		_, err := svc.BatchCreate(context.Background(), 51, tmpl)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
	t.Run("生成的码互不相同且带上模板属性", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockActivationCodeRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(10).
			DoAndReturn(func(ctx context.Context, c domain.ActivationCode) (int64, error) {
				assert.Equal(t, tmpl.LimitCount, c.LimitCount)
				assert.Equal(t, tmpl.Remark, c.Remark)
				assert.Equal(t, domain.CodeStatusUnused, c.Status)
				assert.Zero(t, c.OwnerId)
				return 1, nil
			})
		seq := 0
		svc := NewAdminService(repo, func() string {
			seq++
			return fmt.Sprintf("code%04d", seq)
		})
		codes, err := svc.BatchCreate(context.Background(), 10, tmpl)
		require.NoError(t, err)
		require.Len(t, codes, 10)
		seen := make(map[string]struct{}, len(codes))
		for _, c := range codes {
			_, ok := seen[c]
			assert.False(t, ok, "生成了重复的码 %s", c)
			seen[c] = struct{}{}
		}
	})
	t.Run("撞唯一索引就换一个码重试", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockActivationCodeRepository(ctrl)
		gomock.InOrder(
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).
				Return(int64(0), repository.ErrCodeDuplicate),
			repo.EXPECT().Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, c domain.ActivationCode) (int64, error) {
					assert.Equal(t, "code0002", c.Code)
					return 2, nil
				}),
		)
		seq := 0
		svc := NewAdminService(repo, func() string {
			seq++
			return fmt.Sprintf("code%04d", seq)
		})
		codes, err := svc.BatchCreate(context.Background(), 1, tmpl)
		require.NoError(t, err)
		assert.Equal(t, []string{"code0002"}, codes)
	})
	t.Run("反复冲突最终报错", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := repomocks.NewMockActivationCodeRepository(ctrl)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(maxGenerateRetries).
			Return(int64(0), repository.ErrCodeDuplicate)
		svc := NewAdminService(repo, func() string {
			return "sameCode"
		})
		_, err := svc.BatchCreate(context.Background(), 1, tmpl)
		assert.ErrorIs(t, err, repository.ErrCodeDuplicate)
	})
}

func TestAdminService_BatchUpdate(t *testing.T) {
	t.Parallel()
	codes := []string{"code0001", "code0002"}
	testCases := []struct {
		name     string
		mock     func(ctrl *gomock.Controller) repository.ActivationCodeRepository
		codes    []string
		status   domain.CodeStatus
		wantErr  error
		wantRows int64
	}{
		{
			name: "批量禁用",
			mock: func(ctrl *gomock.Controller) repository.ActivationCodeRepository {
				repo := repomocks.NewMockActivationCodeRepository(ctrl)
				repo.EXPECT().BatchUpdateStatus(gomock.Any(), codes,
					domain.CodeStatusDisabled, "违规发放").Return(int64(2), nil)
				return repo
			},
			codes:    codes,
			status:   domain.CodeStatusDisabled,
			wantRows: 2,
		},
		{
			name: "不存在的码静默忽略",
			mock: func(ctrl *gomock.Controller) repository.ActivationCodeRepository {
				repo := repomocks.NewMockActivationCodeRepository(ctrl)
				repo.EXPECT().BatchUpdateStatus(gomock.Any(), codes,
					domain.CodeStatusUnused, "违规发放").Return(int64(1), nil)
				return repo
			},
			codes:    codes,
			status:   domain.CodeStatusUnused,
			wantRows: 1,
		},
		{
			name: "空列表拒绝",
			mock: func(ctrl *gomock.Controller) repository.ActivationCodeRepository {
				return repomocks.NewMockActivationCodeRepository(ctrl)
			},
			codes:   nil,
			status:  domain.CodeStatusDisabled,
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "超过 100 个拒绝",
			mock: func(ctrl *gomock.Controller) repository.ActivationCodeRepository {
				return repomocks.NewMockActivationCodeRepository(ctrl)
			},
			codes:   make([]string, 101),
			status:  domain.CodeStatusDisabled,
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "不允许直接置为已使用",
			mock: func(ctrl *gomock.Controller) repository.ActivationCodeRepository {
				return repomocks.NewMockActivationCodeRepository(ctrl)
			},
			codes:   codes,
			status:  domain.CodeStatusUsed,
			wantErr: ErrInvalidCodeStatus,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			svc := NewAdminService(tc.mock(ctrl), nil)
			rows, err := svc.BatchUpdate(context.Background(), tc.codes, tc.status, "违规发放")
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantRows, rows)
		})
	}
}
