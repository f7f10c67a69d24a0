package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/passport/internal/identity/internal/domain"
)

type RegisterOrBindReq struct {
	IdentityId int64  `json:"identityId"`
	LoginName  string `json:"loginName"`
	Password   string `json:"password"`
}

type UnbindReq struct {
	ThirdPartyType string `json:"thirdPartyType"`
	Password       string `json:"password"`
}

type IsBindReq struct {
	LoginName      string `form:"loginName"`
	ThirdPartyType string `form:"thirdPartyType"`
}

type Profile struct {
	Id       int64  `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// LinkVO 对外只暴露这三个字段，openId/unionId 不出网
type LinkVO struct {
	ThirdPartyType string `json:"thirdPartyType"`
	Name           string `json:"name"`
	UserId         int64  `json:"userId"`
}

func newLinkVOs(ts []domain.ThirdPartyIdentity) []LinkVO {
	return slice.Map(ts, func(idx int, src domain.ThirdPartyIdentity) LinkVO {
		return LinkVO{
			ThirdPartyType: string(src.Provider),
			Name:           src.Name,
			UserId:         src.UserId,
		}
	})
}
