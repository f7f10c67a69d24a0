package errs

var (
	SystemError = ErrorCode{Code: 503001, Msg: "系统错误"}
	// UserOrPasswordError 与用户模块共用同一个对外文案，避免账号枚举
	UserOrPasswordError = ErrorCode{Code: 503002, Msg: "用户名或密码错误"}
	// AlreadyLinkedError 第三方账号已经绑定了别的本站账号
	AlreadyLinkedError   = ErrorCode{Code: 503003, Msg: "该第三方账号已被绑定"}
	InvalidProviderError = ErrorCode{Code: 503004, Msg: "不支持的第三方平台"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
