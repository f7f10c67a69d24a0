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
	"net/http"
	"net/url"

	"github.com/ecodeclub/ekit/net/httpx"
	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

const authURLPattern = "https://open.weixin.qq.com/connect/qrconnect?appid=%s&redirect_uri=%s&response_type=code&scope=snsapi_login&state=%s#wechat_redirect"

//go:generate mockgen -source=./oauth2_wechat.go -package=svcmocks -destination=mocks/oauth2.mock.go OAuth2Service
type OAuth2Service interface {
	AuthURL(state string) string
	// Exchange 用授权码换取第三方侧的用户信息。
	// 任何一步失败都直接终止整个回调流程，不做重试。
	Exchange(ctx context.Context, authCode string) (domain.WechatInfo, error)
}

type WechatOAuth2Service struct {
	appId       string
	appSecret   string
	redirectURL string
	logger      *elog.Component
	client      *http.Client
}

func NewWechatService(appId, appSecret, redirectURL string) OAuth2Service {
	return &WechatOAuth2Service{
		redirectURL: url.PathEscape(redirectURL),
		logger:      elog.DefaultLogger,
		client:      http.DefaultClient,
		appId:       appId,
		appSecret:   appSecret,
	}
}

func (s *WechatOAuth2Service) AuthURL(state string) string {
	return fmt.Sprintf(authURLPattern, s.appId, s.redirectURL, state)
}

func (s *WechatOAuth2Service) Exchange(ctx context.Context, authCode string) (domain.WechatInfo, error) {
	const tokenURL = "https://api.weixin.qq.com/sns/oauth2/access_token"
	var tokenRes accessTokenResult
	err := httpx.NewRequest(ctx, http.MethodGet, tokenURL).
		Client(s.client).
		AddParam("appid", s.appId).
		AddParam("secret", s.appSecret).
		AddParam("code", authCode).
		AddParam("grant_type", "authorization_code").Do().
		JSONScan(&tokenRes)
	if err != nil {
		return domain.WechatInfo{}, err
	}
	if tokenRes.ErrCode != 0 {
		return domain.WechatInfo{},
			fmt.Errorf("换取 access_token 失败 %d, %s", tokenRes.ErrCode, tokenRes.ErrMsg)
	}

	const userInfoURL = "https://api.weixin.qq.com/sns/userinfo"
	var infoRes userInfoResult
	err = httpx.NewRequest(ctx, http.MethodGet, userInfoURL).
		Client(s.client).
		AddParam("access_token", tokenRes.AccessToken).
		AddParam("openid", tokenRes.OpenId).Do().
		JSONScan(&infoRes)
	if err != nil {
		return domain.WechatInfo{}, err
	}
	if infoRes.ErrCode != 0 {
		return domain.WechatInfo{},
			fmt.Errorf("获取用户信息失败 %d, %s", infoRes.ErrCode, infoRes.ErrMsg)
	}
	return domain.WechatInfo{
		OpenId:       tokenRes.OpenId,
		UnionId:      tokenRes.UnionId,
		Nickname:     infoRes.Nickname,
		HeadImageURL: infoRes.HeadImgUrl,
	}, nil
}

type accessTokenResult struct {
	ErrCode int64  `json:"errcode"`
	ErrMsg  string `json:"errmsg"`

	Scope string `json:"scope"`

	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`

	OpenId  string `json:"openid"`
	UnionId string `json:"unionid"`
}

type userInfoResult struct {
	ErrCode int64  `json:"errcode"`
	ErrMsg  string `json:"errmsg"`

	Nickname   string `json:"nickname"`
	HeadImgUrl string `json:"headimgurl"`
}
