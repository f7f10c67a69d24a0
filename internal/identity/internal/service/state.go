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
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// StateTokenGenerator 为绑定回调生成防 CSRF 的 state。
// 同一个用户算出来的值是确定的，多实例部署不需要共享任何状态。
type StateTokenGenerator struct {
	key []byte
}

func NewStateTokenGenerator(key string) *StateTokenGenerator {
	return &StateTokenGenerator{key: []byte(key)}
}

func (g *StateTokenGenerator) Generate(uid int64) string {
	h := hmac.New(sha256.New, g.key)
	_, _ = fmt.Fprintf(h, "uid:%d", uid)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify 整值比较，不允许前缀匹配之类的宽松校验
func (g *StateTokenGenerator) Verify(uid int64, state string) bool {
	return hmac.Equal([]byte(g.Generate(uid)), []byte(state))
}
