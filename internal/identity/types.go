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
	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/service"
	"github.com/ecodeclub/passport/internal/identity/internal/web"
)

type Handler = web.Handler
type ThirdPartyIdentity = domain.ThirdPartyIdentity
type Provider = domain.Provider

const (
	ProviderWechat = domain.ProviderWechat
	ProviderWeibo  = domain.ProviderWeibo
)

// Service 方便测试
type Service = service.Service
type BindStatus = service.BindStatus

const (
	BindStatusBound         = service.BindStatusBound
	BindStatusBadState      = service.BindStatusBadState
	BindStatusAlreadyLinked = service.BindStatusAlreadyLinked
)

type Module struct {
	Hdl *Handler
	Svc Service
}
