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

package code

import (
	"github.com/ecodeclub/passport/internal/code/internal/repository/dao"
	"github.com/ecodeclub/passport/internal/pkg/codegen"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

func initDAO(db *egorm.Component) dao.ActivationCodeDAO {
	err := dao.InitTables(db)
	if err != nil {
		panic(err)
	}
	return dao.NewGORMActivationCodeDAO(db)
}

func initCodeGenerator() func() string {
	return codegen.NewGenerator().Generate
}

// initInviteLimitCount 新建邀请码的默认可兑换次数，配置缺省时是 5
func initInviteLimitCount() int64 {
	type Config struct {
		InviteLimit int64 `yaml:"inviteLimit"`
	}
	var cfg Config
	// code 配置段整体可以不配
	_ = econf.UnmarshalKey("code", &cfg)
	if cfg.InviteLimit <= 0 {
		cfg.InviteLimit = 5
	}
	return cfg.InviteLimit
}
