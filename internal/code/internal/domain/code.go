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

package domain

// CodeStatus 激活码状态，数值是对外接口契约，不要改
type CodeStatus uint8

const (
	// CodeStatusUnused 未使用
	CodeStatusUnused CodeStatus = 0
	// CodeStatusUsed 已使用，limitCount 扣减到 0 时顺手翻转
	CodeStatusUsed CodeStatus = 1
	// CodeStatusDisabled 已禁用，只有管理端会设置
	CodeStatusDisabled CodeStatus = 2
)

func (s CodeStatus) ToUint8() uint8 {
	return uint8(s)
}

type ActivationCode struct {
	Id     int64
	Code   string
	Status CodeStatus
	// LimitCount 剩余可兑换次数，只通过原子增减来修改
	LimitCount int64
	// StartEffectiveDate 和 EndEffectiveDate 为 0 表示不限制
	StartEffectiveDate int64
	EndEffectiveDate   int64
	Remark             string
	// OwnerId 非 0 说明这是某个用户的专属邀请码
	OwnerId       int64
	OwnerUsername string
	Ctime         int64
	Utime         int64
}

// Redeemable 判断在 now（毫秒时间戳）这一刻能否兑换。
// 这里只是资格预检，真正的并发安全由存储层的条件更新保证。
func (c ActivationCode) Redeemable(now int64) bool {
	if c.Status != CodeStatusUnused {
		return false
	}
	if c.LimitCount <= 0 {
		return false
	}
	if c.StartEffectiveDate > 0 && now < c.StartEffectiveDate {
		return false
	}
	if c.EndEffectiveDate > 0 && now > c.EndEffectiveDate {
		return false
	}
	return true
}

// CodeUsageRecord 兑换流水，只追加不修改
type CodeUsageRecord struct {
	Id       int64
	Code     string
	UserId   int64
	Username string
	Ctime    int64
}

// CodeTemplate 批量生成激活码时的公共属性
type CodeTemplate struct {
	LimitCount         int64
	StartEffectiveDate int64
	EndEffectiveDate   int64
	Remark             string
}

// CodeFilter 管理端列表查询条件。
// 字段为零值表示不参与过滤。
type CodeFilter struct {
	// Status 用指针区分"不过滤"和"过滤 Unused(0)"
	Status *CodeStatus
	// Keywords 精确匹配 code 或者属主用户名
	Keywords        string
	BeginCreateDate int64
	EndCreateDate   int64
}

// UsageFilter 兑换流水查询条件
type UsageFilter struct {
	Code     string
	Username string
}
