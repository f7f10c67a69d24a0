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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/passport/internal/code/internal/domain"
)

type InviteCodeCache interface {
	GetInviteCode(ctx context.Context, ownerId int64) (domain.ActivationCode, error)
	SetInviteCode(ctx context.Context, c domain.ActivationCode) error
}

type InviteCodeECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewInviteCodeECache(ec ecache.Cache) InviteCodeCache {
	return &InviteCodeECache{
		ec: &ecache.NamespaceCache{
			Namespace: "code:invite:",
			C:         ec,
		},
		expiration: 24 * time.Hour,
	}
}

func (c *InviteCodeECache) GetInviteCode(ctx context.Context, ownerId int64) (domain.ActivationCode, error) {
	var res domain.ActivationCode
	err := c.ec.Get(ctx, c.codeKey(ownerId)).JSONScan(&res)
	return res, err
}

// SetInviteCode 整行缓存，命中时拿到的记录和库里的一致
func (c *InviteCodeECache) SetInviteCode(ctx context.Context, code domain.ActivationCode) error {
	data, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return c.ec.Set(ctx, c.codeKey(code.OwnerId), data, c.expiration)
}

// 注意 Namespace 设置
func (c *InviteCodeECache) codeKey(ownerId int64) string {
	return fmt.Sprintf("user:%d", ownerId)
}
