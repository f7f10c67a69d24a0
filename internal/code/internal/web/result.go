package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/passport/internal/code/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	codeIneligibleResult = ginx.Result{
		Code: errs.CodeIneligibleError.Code,
		Msg:  errs.CodeIneligibleError.Msg,
	}
)
