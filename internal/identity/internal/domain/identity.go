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

// Provider 第三方平台标识，取值是对外接口契约
type Provider string

const (
	ProviderWechat Provider = "weChat"
	ProviderWeibo  Provider = "weibo"
)

func (p Provider) Valid() bool {
	return p == ProviderWechat || p == ProviderWeibo
}

const (
	IdentityStatusActive uint8 = 1
)

// ThirdPartyIdentity 第三方账号与本站账号的关联
type ThirdPartyIdentity struct {
	Id       int64
	Provider Provider
	// OpenId 应用内唯一
	OpenId string
	// UnionId 同一主体的多个应用之间都相同，关联按它去重
	UnionId string
	// UserId 为 0 表示该第三方账号还没有绑定本站账号
	UserId    int64
	Name      string
	HeadImage string
	Status    uint8
	Ctime     int64
	Utime     int64
}

// Linked 是否已经绑定了本站账号
func (i ThirdPartyIdentity) Linked() bool {
	return i.UserId > 0
}

// WechatInfo 微信侧返回的用户快照
type WechatInfo struct {
	OpenId       string
	UnionId      string
	Nickname     string
	HeadImageURL string
}
