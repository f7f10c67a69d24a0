package web

import (
	"errors"
	"strconv"

	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/passport/internal/code/internal/domain"
	"github.com/ecodeclub/passport/internal/code/internal/errs"
	"github.com/ecodeclub/passport/internal/code/internal/repository"
	"github.com/ecodeclub/passport/internal/code/internal/service"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &AdminHandler{}

// AdminHandler 管理端接口，默认挂在登录校验之后
type AdminHandler struct {
	svc service.AdminService
}

func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) PublicRoutes(_ *gin.Engine) {}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	codes := server.Group("/testQualifications/beta/codes")
	codes.GET("", ginx.W(h.List))
	codes.POST("/batchCreate", ginx.B[BatchCreateReq](h.BatchCreate))
	codes.PUT("/batchUpdate", ginx.B[BatchUpdateReq](h.BatchUpdate))
	codes.PUT("/limitCount", ginx.B[AdjustLimitReq](h.AdjustLimitCount))
	codes.GET("/usedRecords", ginx.W(h.ListUsageRecords))
	codes.GET("/:code", ginx.W(h.Detail))
}

func (h *AdminHandler) BatchCreate(ctx *ginx.Context, req BatchCreateReq) (ginx.Result, error) {
	codes, err := h.svc.BatchCreate(ctx.Request.Context(), req.Quantity, domain.CodeTemplate{
		LimitCount:         req.LimitCount,
		StartEffectiveDate: req.StartEffectiveDate,
		EndEffectiveDate:   req.EndEffectiveDate,
		Remark:             req.Remark,
	})
	if errors.Is(err, service.ErrInvalidQuantity) {
		return ginx.Result{
			Code: errs.InvalidQuantityError.Code,
			Msg:  errs.InvalidQuantityError.Msg,
		}, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: codes,
	}, nil
}

func (h *AdminHandler) BatchUpdate(ctx *ginx.Context, req BatchUpdateReq) (ginx.Result, error) {
	affected, err := h.svc.BatchUpdate(ctx.Request.Context(), req.Codes,
		domain.CodeStatus(req.Status), req.Remark)
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		return ginx.Result{
			Code: errs.InvalidQuantityError.Code,
			Msg:  errs.InvalidQuantityError.Msg,
		}, err
	case errors.Is(err, service.ErrInvalidCodeStatus):
		return ginx.Result{
			Code: errs.InvalidCodeStatusError.Code,
			Msg:  errs.InvalidCodeStatusError.Msg,
		}, err
	case err != nil:
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: affected,
	}, nil
}

func (h *AdminHandler) AdjustLimitCount(ctx *ginx.Context, req AdjustLimitReq) (ginx.Result, error) {
	affected, err := h.svc.AdjustLimitCount(ctx.Request.Context(), req.Code, req.Delta)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: affected,
	}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context) (ginx.Result, error) {
	var req ListReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return systemErrorResult, err
	}
	f := domain.CodeFilter{
		Keywords:        req.Keywords,
		BeginCreateDate: req.BeginCreateDate,
		EndCreateDate:   req.EndCreateDate,
	}
	if req.Status != "" {
		s, err := strconv.ParseUint(req.Status, 10, 8)
		if err != nil {
			return ginx.Result{
				Code: errs.InvalidCodeStatusError.Code,
				Msg:  errs.InvalidCodeStatusError.Msg,
			}, err
		}
		status := domain.CodeStatus(s)
		f.Status = &status
	}
	offset, limit := pagination(req.Page, req.PageSize)
	cs, total, err := h.svc.List(ctx.Request.Context(), f, offset, limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: CodeListResp{
			Total: total,
			Codes: newActivationCodeVOs(cs),
		},
	}, nil
}

func (h *AdminHandler) ListUsageRecords(ctx *ginx.Context) (ginx.Result, error) {
	var req UsedRecordsReq
	if err := ctx.ShouldBindQuery(&req); err != nil {
		return systemErrorResult, err
	}
	offset, limit := pagination(req.Page, req.PageSize)
	rs, total, err := h.svc.ListUsageRecords(ctx.Request.Context(), domain.UsageFilter{
		Code:     req.Code,
		Username: req.Username,
	}, offset, limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: UsageRecordListResp{
			Total:   total,
			Records: newUsageRecordVOs(rs),
		},
	}, nil
}

func (h *AdminHandler) Detail(ctx *ginx.Context) (ginx.Result, error) {
	code := ctx.Param("code").StringOrDefault("")
	c, err := h.svc.FindByCode(ctx.Request.Context(), code)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return codeIneligibleResult, err
	}
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: newActivationCodeVO(c),
	}, nil
}

func pagination(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}
