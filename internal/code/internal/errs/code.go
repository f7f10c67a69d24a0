package errs

var (
	SystemError = ErrorCode{Code: 502001, Msg: "系统错误"}
	// CodeIneligibleError 不存在、已用完、被禁用、不在有效期内统一用这一个，
	// 不给调用方探测激活码状态的机会
	CodeIneligibleError    = ErrorCode{Code: 502002, Msg: "激活码无法兑换"}
	InvalidQuantityError   = ErrorCode{Code: 502003, Msg: "数量超出范围"}
	InvalidCodeStatusError = ErrorCode{Code: 502004, Msg: "不支持的目标状态"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
