package web

import (
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/passport/internal/identity/internal/errs"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	alreadyLinkedResult = ginx.Result{
		Code: errs.AlreadyLinkedError.Code,
		Msg:  errs.AlreadyLinkedError.Msg,
	}
)
