package web

import (
	"errors"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/passport/internal/code/internal/service"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

// Handler 面向普通用户的兑换接口
type Handler struct {
	svc     service.Service
	userSvc user.UserService
}

func NewHandler(svc service.Service, userSvc user.UserService) *Handler {
	return &Handler{
		svc:     svc,
		userSvc: userSvc,
	}
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	codes := server.Group("/testQualifications/beta/codes")
	codes.POST("/activate", ginx.BS[ActivateReq](h.Activate))
	codes.GET("/userActivateCode", ginx.S(h.UserActivateCode))
}

// Activate 兑换一个激活码，消耗一次配额
func (h *Handler) Activate(ctx *ginx.Context, req ActivateReq, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	u, err := h.userSvc.Profile(ctx.Request.Context(), uid)
	if err != nil {
		return systemErrorResult, err
	}
	err = h.svc.Redeem(ctx.Request.Context(), uid, u.Username, req.Code)
	if errors.Is(err, service.ErrCodeIneligible) {
		return codeIneligibleResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Msg: "OK",
	}, nil
}

// UserActivateCode 返回当前用户的专属邀请码，第一次访问时生成
func (h *Handler) UserActivateCode(ctx *ginx.Context, sess session.Session) (ginx.Result, error) {
	uid := sess.Claims().Uid
	u, err := h.userSvc.Profile(ctx.Request.Context(), uid)
	if err != nil {
		return systemErrorResult, err
	}
	c, err := h.svc.FindOrCreateUserCode(ctx.Request.Context(), uid, u.Username)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newActivationCodeVO(c),
	}, nil
}
