package domain

type User struct {
	Id       int64
	Username string
	Nickname string
	Avatar   string
	SN       string
	// Password 是加密后的密码，只在登录与绑定校验的链路上携带，
	// 永远不要序列化给前端
	Password string
}
