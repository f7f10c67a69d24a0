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
	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/service"
	"github.com/ecodeclub/passport/internal/code/internal/web"
)

type Handler = web.Handler
type AdminHandler = web.AdminHandler
type ActivationCode = domain.ActivationCode
type CodeStatus = domain.CodeStatus

const (
	CodeStatusUnused   = domain.CodeStatusUnused
	CodeStatusUsed     = domain.CodeStatusUsed
	CodeStatusDisabled = domain.CodeStatusDisabled
)

// Service 方便测试
type Service = service.Service
type AdminService = service.AdminService

var ErrCodeIneligible = service.ErrCodeIneligible

type Module struct {
	Hdl      *Handler
	AdminHdl *AdminHandler
	Svc      Service
	AdminSvc AdminService
}
