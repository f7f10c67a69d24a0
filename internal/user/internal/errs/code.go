package errs

var (
	SystemError = ErrorCode{Code: 501001, Msg: "系统错误"}
	// UserOrPasswordError 账号不存在和密码错误共用同一个对外文案，
	// 避免账号枚举
	UserOrPasswordError = ErrorCode{Code: 501002, Msg: "用户名或密码错误"}
	UserDuplicateError  = ErrorCode{Code: 501003, Msg: "用户已经注册"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
