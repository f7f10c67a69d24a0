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

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/passport/internal/identity/internal/domain"
	"github.com/ecodeclub/passport/internal/identity/internal/errs"
	"github.com/ecodeclub/passport/internal/identity/internal/service"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 绑定写入已经持久化但发会话失败的次数。
// 这种用户可以用密码重新登录，不回滚绑定，只做观测
var bindSessionFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "identity_bind_session_failures_total",
	Help: "Total number of session issue failures after a durable bind",
})

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
	// defaultReturnUrl 回调没带 returnUrl 时的去处
	defaultReturnUrl string
	logger           *elog.Component
}

func NewHandler(svc service.Service, defaultReturnUrl string) *Handler {
	return &Handler{
		svc:              svc,
		defaultReturnUrl: defaultReturnUrl,
		logger:           elog.DefaultLogger,
	}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	tp := server.Group("/thirdParty")
	tp.GET("/weChat/authUrl", ginx.W(h.LoginAuthURL))
	// 回调时控制权已经回到浏览器手里，只能用一段脚本把页面带走
	tp.GET("/weChat/codeHandle", h.CodeHandle)
	tp.POST("/registerOrBind", ginx.B[RegisterOrBindReq](h.RegisterOrBind))
	tp.GET("/isBind", ginx.W(h.IsBind))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	tp := server.Group("/thirdParty")
	tp.GET("/weChat/bindUrl", ginx.S(h.BindAuthURL))
	tp.GET("/weChat/bindHandle", h.BindHandle)
	tp.PUT("/unbind", ginx.BS[UnbindReq](h.Unbind))
	tp.GET("/list", ginx.S(h.List))
}

func (h *Handler) LoginAuthURL(ctx *ginx.Context) (ginx.Result, error) {
	return ginx.Result{
		Data: h.svc.LoginAuthURL(),
	}, nil
}

func (h *Handler) BindAuthURL(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	return ginx.Result{
		Data: h.svc.BindAuthURL(sess.Claims().Uid),
	}, nil
}

// CodeHandle 登录回调。已绑定的直接发会话落地，
// 没绑定的把 identityId 透传给注册绑定页，让它无状态续上流程
func (h *Handler) CodeHandle(ctx *gin.Context) {
	authCode := ctx.Query("code")
	returnUrl := ctx.Query("returnUrl")
	if returnUrl == "" {
		returnUrl = h.defaultReturnUrl
	}
	res, err := h.svc.HandleLoginCallback(ctx.Request.Context(), authCode)
	if err != nil {
		h.logger.Error("处理微信登录回调失败", elog.FieldErr(err))
		ctx.String(http.StatusInternalServerError, errs.SystemError.Msg)
		return
	}
	if res.NeedBind {
		h.redirectScript(ctx, appendQuery(returnUrl,
			fmt.Sprintf("needBind=1&identityId=%d", res.IdentityId)))
		return
	}
	_, err = session.NewSessionBuilder(&ginx.Context{Context: ctx}, res.User.Id).Build()
	if err != nil {
		h.logger.Error("微信登录发会话失败", elog.FieldErr(err))
		ctx.String(http.StatusInternalServerError, errs.SystemError.Msg)
		return
	}
	h.redirectScript(ctx, returnUrl)
}

// BindHandle 已登录用户主动绑定的回调，
// 结果用 type=wechat&status=N 拼在重定向地址上
func (h *Handler) BindHandle(ctx *gin.Context) {
	gtx := &ginx.Context{Context: ctx}
	sess, err := session.Get(gtx)
	if err != nil {
		ctx.String(http.StatusUnauthorized, errs.SystemError.Msg)
		return
	}
	returnUrl := ctx.Query("returnUrl")
	if returnUrl == "" {
		returnUrl = h.defaultReturnUrl
	}
	status, err := h.svc.BindToLoggedInUser(ctx.Request.Context(),
		sess.Claims().Uid, ctx.Query("code"), ctx.Query("state"))
	if err != nil {
		h.logger.Error("处理微信绑定回调失败", elog.FieldErr(err))
		ctx.String(http.StatusInternalServerError, errs.SystemError.Msg)
		return
	}
	h.redirectScript(ctx, appendQuery(returnUrl,
		fmt.Sprintf("type=wechat&status=%d", status)))
}

func (h *Handler) RegisterOrBind(ctx *ginx.Context, req RegisterOrBindReq) (ginx.Result, error) {
	u, err := h.svc.CompleteBind(ctx.Request.Context(),
		req.IdentityId, req.LoginName, req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidUserOrPassword):
		return ginx.Result{
			Code: errs.UserOrPasswordError.Code,
			Msg:  errs.UserOrPasswordError.Msg,
		}, err
	case errors.Is(err, service.ErrAlreadyLinked),
		errors.Is(err, service.ErrIdentityNotFound):
		return alreadyLinkedResult, err
	case err != nil:
		return systemErrorResult, err
	}
	// 绑定已经落库，发会话失败也不回滚，用户还能用密码登录
	_, err = session.NewSessionBuilder(ctx, u.Id).Build()
	if err != nil {
		bindSessionFailures.Inc()
		h.logger.Error("绑定后发会话失败",
			elog.FieldErr(err),
			elog.Int64("uid", u.Id),
		)
	}
	return ginx.Result{
		Data: Profile{
			Id:       u.Id,
			Nickname: u.Nickname,
			Avatar:   u.Avatar,
		},
	}, nil
}

func (h *Handler) Unbind(ctx *ginx.Context, req UnbindReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Unbind(ctx.Request.Context(), sess.Claims().Uid,
		domain.Provider(req.ThirdPartyType), req.Password)
	switch {
	case errors.Is(err, user.ErrInvalidUserOrPassword):
		return ginx.Result{
			Code: errs.UserOrPasswordError.Code,
			Msg:  errs.UserOrPasswordError.Msg,
		}, err
	case errors.Is(err, service.ErrInvalidProvider):
		return ginx.Result{
			Code: errs.InvalidProviderError.Code,
			Msg:  errs.InvalidProviderError.Msg,
		}, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Msg: "OK",
	}, nil
}

func (h *Handler) List(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	links, err := h.svc.ListLinks(ctx.Request.Context(), sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newLinkVOs(links),
	}, nil
}

func (h *Handler) IsBind(ctx *ginx.Context) (ginx.Result, error) {
	var req IsBindReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return systemErrorResult, err
	}
	bound, err := h.svc.IsBound(ctx.Request.Context(), req.LoginName,
		domain.Provider(req.ThirdPartyType))
	if errors.Is(err, service.ErrInvalidProvider) {
		return ginx.Result{
			Code: errs.InvalidProviderError.Code,
			Msg:  errs.InvalidProviderError.Msg,
		}, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: bound,
	}, nil
}

func (h *Handler) redirectScript(ctx *gin.Context, target string) {
	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.String(http.StatusOK, "<script>location.href=%q</script>", target)
}

func appendQuery(rawURL, query string) string {
	if strings.Contains(rawURL, "?") {
		return rawURL + "&" + query
	}
	return rawURL + "?" + query
}
