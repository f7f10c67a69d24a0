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

package identity

import (
	"github.com/ecodeclub/passport/internal/identity/internal/repository/dao"
	"github.com/ecodeclub/passport/internal/identity/internal/service"
	"github.com/ecodeclub/passport/internal/identity/internal/web"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

type config struct {
	AppId     string `yaml:"appId"`
	AppSecret string `yaml:"appSecret"`
	// CallbackUrl 微信侧回跳到本服务的地址
	CallbackUrl string `yaml:"callbackUrl"`
	// ReturnUrl 回调没带 returnUrl 时的默认去处
	ReturnUrl string `yaml:"returnUrl"`
	// StateKey state 令牌的 HMAC 密钥
	StateKey string `yaml:"stateKey"`
}

func loadConfig() config {
	var cfg config
	err := econf.UnmarshalKey("wechat", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

func initDAO(db *egorm.Component) dao.ThirdPartyIdentityDAO {
	err := dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return dao.NewGORMThirdPartyIdentityDAO(db)
}

func initOAuth2Service() service.OAuth2Service {
	cfg := loadConfig()
	return service.NewWechatService(cfg.AppId, cfg.AppSecret, cfg.CallbackUrl)
}

func initStateTokenGenerator() *service.StateTokenGenerator {
	cfg := loadConfig()
	return service.NewStateTokenGenerator(cfg.StateKey)
}

func initHandler(svc service.Service) *web.Handler {
	cfg := loadConfig()
	return web.NewHandler(svc, cfg.ReturnUrl)
}
