package web

import (
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/passport/internal/code/internal/domain"
)

type ActivateReq struct {
	Code string `json:"code"`
}

type BatchCreateReq struct {
	Quantity           int    `json:"quantity"`
	LimitCount         int64  `json:"limitCount"`
	StartEffectiveDate int64  `json:"startEffectiveDate"`
	EndEffectiveDate   int64  `json:"endEffectiveDate"`
	Remark             string `json:"remark"`
}

type BatchUpdateReq struct {
	Codes  []string `json:"codes"`
	Status uint8    `json:"status"`
	Remark string   `json:"remark"`
}

type AdjustLimitReq struct {
	Code  string `json:"code"`
	Delta int64  `json:"delta"`
}

// ListReq 管理端列表查询，走 query string
type ListReq struct {
	// Status 为空串表示不过滤，"0"/"1"/"2" 表示按状态过滤
	Status          string `form:"status"`
	Keywords        string `form:"keywords"`
	BeginCreateDate int64  `form:"beginCreateDate"`
	EndCreateDate   int64  `form:"endCreateDate"`
	Page            int    `form:"page"`
	PageSize        int    `form:"pageSize"`
}

type UsedRecordsReq struct {
	Code     string `form:"code"`
	Username string `form:"username"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type ActivationCodeVO struct {
	Code               string `json:"code"`
	Status             uint8  `json:"status"`
	LimitCount         int64  `json:"limitCount"`
	StartEffectiveDate int64  `json:"startEffectiveDate,omitempty"`
	EndEffectiveDate   int64  `json:"endEffectiveDate,omitempty"`
	Remark             string `json:"remark,omitempty"`
	OwnerUsername      string `json:"ownerUsername,omitempty"`
	CreateDate         int64  `json:"createDate"`
}

type UsageRecordVO struct {
	Code       string `json:"code"`
	Username   string `json:"username"`
	CreateDate int64  `json:"createDate"`
}

type CodeListResp struct {
	Total int64              `json:"total"`
	Codes []ActivationCodeVO `json:"codes"`
}

type UsageRecordListResp struct {
	Total   int64           `json:"total"`
	Records []UsageRecordVO `json:"records"`
}

func newActivationCodeVO(c domain.ActivationCode) ActivationCodeVO {
	return ActivationCodeVO{
		Code:               c.Code,
		Status:             c.Status.ToUint8(),
		LimitCount:         c.LimitCount,
		StartEffectiveDate: c.StartEffectiveDate,
		EndEffectiveDate:   c.EndEffectiveDate,
		Remark:             c.Remark,
		OwnerUsername:      c.OwnerUsername,
		CreateDate:         c.Ctime,
	}
}

func newActivationCodeVOs(cs []domain.ActivationCode) []ActivationCodeVO {
	return slice.Map(cs, func(idx int, src domain.ActivationCode) ActivationCodeVO {
		return newActivationCodeVO(src)
	})
}

func newUsageRecordVOs(rs []domain.CodeUsageRecord) []UsageRecordVO {
	return slice.Map(rs, func(idx int, src domain.CodeUsageRecord) UsageRecordVO {
		return UsageRecordVO{
			Code:       src.Code,
			Username:   src.Username,
			CreateDate: src.Ctime,
		}
	})
}
