// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrIdentityNotFound = gorm.ErrRecordNotFound
	// ErrAlreadyLinked 条件绑定没有命中任何行，
	// 说明这条第三方账号在读取之后被并发绑定了
	ErrAlreadyLinked = errors.New("第三方账号已被绑定")
)

//go:generate mockgen -source=./identity.go -package=daomocks -destination=mocks/identity.mock.go ThirdPartyIdentityDAO
type ThirdPartyIdentityDAO interface {
	// Upsert 按 (third_party_type, union_id) 去重，
	// 已存在时刷新 name 和 head_image 快照，返回落库后的数据
	Upsert(ctx context.Context, t ThirdPartyIdentity) (ThirdPartyIdentity, error)
	FindById(ctx context.Context, id int64) (ThirdPartyIdentity, error)
	FindByUnionId(ctx context.Context, thirdPartyType, unionId string) (ThirdPartyIdentity, error)
	FindByUserId(ctx context.Context, userId int64) ([]ThirdPartyIdentity, error)
	FindByUserIdAndType(ctx context.Context, userId int64, thirdPartyType string) (ThirdPartyIdentity, error)
	// Bind 只在还没有绑定用户时才会生效，命中零行返回 ErrAlreadyLinked
	Bind(ctx context.Context, id int64, userId int64) error
	// Unbind 删除绑定关系，不存在时也算成功
	Unbind(ctx context.Context, userId int64, thirdPartyType string) error
}

type GORMThirdPartyIdentityDAO struct {
	db *egorm.Component
}

func NewGORMThirdPartyIdentityDAO(db *egorm.Component) ThirdPartyIdentityDAO {
	return &GORMThirdPartyIdentityDAO{db: db}
}

func (d *GORMThirdPartyIdentityDAO) Upsert(ctx context.Context, t ThirdPartyIdentity) (ThirdPartyIdentity, error) {
	now := time.Now().UnixMilli()
	t.Ctime = now
	t.Utime = now
	err := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "third_party_type"}, {Name: "union_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"open_id":    t.OpenId,
			"name":       t.Name,
			"head_image": t.HeadImage,
			"utime":      now,
		}),
	}).Create(&t).Error
	if err != nil {
		return ThirdPartyIdentity{}, err
	}
	// 冲突分支拿不到已有行的主键和 user_id，重新读一次
	return d.FindByUnionId(ctx, t.ThirdPartyType, t.UnionId)
}

func (d *GORMThirdPartyIdentityDAO) FindById(ctx context.Context, id int64) (ThirdPartyIdentity, error) {
	var t ThirdPartyIdentity
	err := d.db.WithContext(ctx).First(&t, "id = ?", id).Error
	return t, err
}

func (d *GORMThirdPartyIdentityDAO) FindByUnionId(ctx context.Context, thirdPartyType, unionId string) (ThirdPartyIdentity, error) {
	var t ThirdPartyIdentity
	err := d.db.WithContext(ctx).
		First(&t, "third_party_type = ? AND union_id = ?", thirdPartyType, unionId).Error
	return t, err
}

func (d *GORMThirdPartyIdentityDAO) FindByUserId(ctx context.Context, userId int64) ([]ThirdPartyIdentity, error) {
	var res []ThirdPartyIdentity
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userId, uint8(1)).
		Find(&res).Error
	return res, err
}

func (d *GORMThirdPartyIdentityDAO) FindByUserIdAndType(ctx context.Context, userId int64, thirdPartyType string) (ThirdPartyIdentity, error) {
	var t ThirdPartyIdentity
	err := d.db.WithContext(ctx).
		First(&t, "user_id = ? AND third_party_type = ? AND status = ?",
			userId, thirdPartyType, uint8(1)).Error
	return t, err
}

func (d *GORMThirdPartyIdentityDAO) Bind(ctx context.Context, id int64, userId int64) error {
	res := d.db.WithContext(ctx).Model(&ThirdPartyIdentity{}).
		Where("id = ? AND user_id IS NULL", id).
		Updates(map[string]any{
			"user_id": userId,
			"utime":   time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyLinked
	}
	return nil
}

func (d *GORMThirdPartyIdentityDAO) Unbind(ctx context.Context, userId int64, thirdPartyType string) error {
	return d.db.WithContext(ctx).
		Where("user_id = ? AND third_party_type = ?", userId, thirdPartyType).
		Delete(&ThirdPartyIdentity{}).Error
}

type ThirdPartyIdentity struct {
	Id int64 `gorm:"primaryKey;autoIncrement;comment:第三方账号自增ID"`
	// weChat / weibo
	ThirdPartyType string `gorm:"type:varchar(32);not null;uniqueIndex:uniq_type_union_id,priority:1;comment:第三方平台"`
	OpenId         string `gorm:"type:varchar(128);not null;comment:应用内唯一标识"`
	UnionId        string `gorm:"type:varchar(128);not null;uniqueIndex:uniq_type_union_id,priority:2;comment:主体内唯一标识"`
	// NULL 表示还没有绑定本站账号
	UserId    sql.NullInt64 `gorm:"index:idx_user_id;comment:绑定的用户ID"`
	Name      string        `gorm:"type:varchar(128);comment:第三方昵称快照"`
	HeadImage string        `gorm:"type:varchar(512);comment:第三方头像快照"`
	Status    uint8         `gorm:"type:tinyint unsigned;not null;default:1;comment:1=有效"`
	Ctime     int64
	Utime     int64
}
