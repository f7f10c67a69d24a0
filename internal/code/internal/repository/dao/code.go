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
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrCodeNotFound = gorm.ErrRecordNotFound
	// ErrCodeDuplicate 撞了唯一索引，可能是 code 本身，也可能是邀请码的属主
	ErrCodeDuplicate = errors.New("激活码已存在")
	// ErrCodeExhausted 条件更新没有命中任何行，
	// 说明码在读取之后被并发兑换耗尽、禁用或删除了
	ErrCodeExhausted = errors.New("激活码已不可兑换")
)

//go:generate mockgen -source=./code.go -package=daomocks -destination=mocks/code.mock.go ActivationCodeDAO
type ActivationCodeDAO interface {
	Insert(ctx context.Context, c ActivationCode) (int64, error)
	FindByCode(ctx context.Context, code string) (ActivationCode, error)
	FindByOwnerId(ctx context.Context, ownerId int64) (ActivationCode, error)
	// BatchUpdateStatus 批量改状态，不存在的 code 静默忽略
	BatchUpdateStatus(ctx context.Context, codes []string, status uint8, remark string) (int64, error)
	// Redeem 对 limit_count 做条件扣减并写入一条兑换流水，两者在同一事务里。
	// 没有命中任何行时返回 ErrCodeExhausted。
	Redeem(ctx context.Context, code string, userId int64, username string) error
	// IncrLimitCount 有符号的原子增减，返回命中的行数
	IncrLimitCount(ctx context.Context, code string, delta int64) (int64, error)
	List(ctx context.Context, f CodeFilter, offset, limit int) ([]ActivationCode, error)
	Count(ctx context.Context, f CodeFilter) (int64, error)
	ListUsageRecords(ctx context.Context, f UsageFilter, offset, limit int) ([]CodeUsageRecord, error)
	CountUsageRecords(ctx context.Context, f UsageFilter) (int64, error)
}

// CodeFilter 是 domain.CodeFilter 在存储层的对应物，
// 在 repository 层做一次翻译，避免 dao 依赖 domain
type CodeFilter struct {
	Status          *uint8
	Keywords        string
	BeginCreateDate int64
	EndCreateDate   int64
}

type UsageFilter struct {
	Code     string
	Username string
}

type GORMActivationCodeDAO struct {
	db *egorm.Component
}

func NewGORMActivationCodeDAO(db *egorm.Component) ActivationCodeDAO {
	return &GORMActivationCodeDAO{db: db}
}

func (d *GORMActivationCodeDAO) Insert(ctx context.Context, c ActivationCode) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime = now
	c.Utime = now
	err := d.db.WithContext(ctx).Create(&c).Error
	if d.isUniqueIndexError(err) {
		return 0, ErrCodeDuplicate
	}
	return c.Id, err
}

func (d *GORMActivationCodeDAO) isUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return true
		}
	}
	return false
}

func (d *GORMActivationCodeDAO) FindByCode(ctx context.Context, code string) (ActivationCode, error) {
	var c ActivationCode
	err := d.db.WithContext(ctx).First(&c, "code = ?", code).Error
	return c, err
}

func (d *GORMActivationCodeDAO) FindByOwnerId(ctx context.Context, ownerId int64) (ActivationCode, error) {
	var c ActivationCode
	err := d.db.WithContext(ctx).First(&c, "owner_id = ?", ownerId).Error
	return c, err
}

func (d *GORMActivationCodeDAO) BatchUpdateStatus(ctx context.Context, codes []string, status uint8, remark string) (int64, error) {
	updates := map[string]any{
		"status": status,
		"utime":  time.Now().UnixMilli(),
	}
	if remark != "" {
		updates["remark"] = remark
	}
	res := d.db.WithContext(ctx).Model(&ActivationCode{}).
		Where("code IN ?", codes).Updates(updates)
	return res.RowsAffected, res.Error
}

func (d *GORMActivationCodeDAO) Redeem(ctx context.Context, code string, userId int64, username string) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Transaction(func(tx *egorm.Component) error {
		// Updates 的 map 会按 key 排序生成 SET 子句，limit_count 在 status 之前；
		// MySQL 的赋值从左到右生效，所以 status 的 IF 里看到的是扣减后的值
		res := tx.Model(&ActivationCode{}).
			Where("code = ? AND status = ? AND limit_count > 0", code, uint8(0)).
			Updates(map[string]any{
				"limit_count": gorm.Expr("limit_count - 1"),
				"status":      gorm.Expr("IF(limit_count = 0, ?, status)", uint8(1)),
				"utime":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 输给了并发兑换者，或者码的状态在读取之后变了
			return ErrCodeExhausted
		}
		r := CodeUsageRecord{
			Code:     code,
			UserId:   userId,
			Username: username,
			Ctime:    now,
			Utime:    now,
		}
		return tx.Create(&r).Error
	})
}

func (d *GORMActivationCodeDAO) IncrLimitCount(ctx context.Context, code string, delta int64) (int64, error) {
	res := d.db.WithContext(ctx).Model(&ActivationCode{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"limit_count": gorm.Expr("limit_count + ?", delta),
			"utime":       time.Now().UnixMilli(),
		})
	return res.RowsAffected, res.Error
}

func (d *GORMActivationCodeDAO) List(ctx context.Context, f CodeFilter, offset, limit int) ([]ActivationCode, error) {
	var res []ActivationCode
	err := d.applyCodeFilter(d.db.WithContext(ctx).Model(&ActivationCode{}), f).
		Order("ctime DESC, id DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *GORMActivationCodeDAO) Count(ctx context.Context, f CodeFilter) (int64, error) {
	var count int64
	err := d.applyCodeFilter(d.db.WithContext(ctx).Model(&ActivationCode{}), f).
		Count(&count).Error
	return count, err
}

func (d *GORMActivationCodeDAO) applyCodeFilter(db *gorm.DB, f CodeFilter) *gorm.DB {
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Keywords != "" {
		db = db.Where("code = ? OR owner_username = ?", f.Keywords, f.Keywords)
	}
	if f.BeginCreateDate > 0 {
		db = db.Where("ctime >= ?", f.BeginCreateDate)
	}
	if f.EndCreateDate > 0 {
		db = db.Where("ctime <= ?", f.EndCreateDate)
	}
	return db
}

func (d *GORMActivationCodeDAO) ListUsageRecords(ctx context.Context, f UsageFilter, offset, limit int) ([]CodeUsageRecord, error) {
	var res []CodeUsageRecord
	err := d.applyUsageFilter(d.db.WithContext(ctx).Model(&CodeUsageRecord{}), f).
		Order("ctime DESC, id DESC").
		Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (d *GORMActivationCodeDAO) CountUsageRecords(ctx context.Context, f UsageFilter) (int64, error) {
	var count int64
	err := d.applyUsageFilter(d.db.WithContext(ctx).Model(&CodeUsageRecord{}), f).
		Count(&count).Error
	return count, err
}

func (d *GORMActivationCodeDAO) applyUsageFilter(db *gorm.DB, f UsageFilter) *gorm.DB {
	if f.Code != "" {
		db = db.Where("code = ?", f.Code)
	}
	if f.Username != "" {
		db = db.Where("username = ?", f.Username)
	}
	return db
}

type ActivationCode struct {
	Id   int64  `gorm:"primaryKey;autoIncrement;comment:激活码自增ID"`
	Code string `gorm:"type:varchar(8);not null;uniqueIndex:uniq_code;comment:激活码"`
	// 0=未使用 1=已使用 2=已禁用
	Status     uint8 `gorm:"type:tinyint unsigned;not null;default:0;comment:使用状态"`
	LimitCount int64 `gorm:"not null;default:0;comment:剩余可兑换次数"`
	// 生效区间，毫秒时间戳，NULL 表示不限制
	StartEffectiveDate sql.NullInt64 `gorm:"comment:生效开始时间"`
	EndEffectiveDate   sql.NullInt64 `gorm:"comment:生效结束时间"`
	Remark             string        `gorm:"type:varchar(512);comment:备注"`
	// 邀请码属主，普通批量生成的码该列为 NULL；唯一索引保证一人一码
	OwnerId       sql.NullInt64 `gorm:"uniqueIndex:uniq_owner_id;comment:邀请码属主ID"`
	OwnerUsername string        `gorm:"type:varchar(128);comment:邀请码属主用户名"`
	Ctime         int64
	Utime         int64
}

type CodeUsageRecord struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:兑换流水自增ID"`
	Code     string `gorm:"type:varchar(8);not null;index:idx_code;comment:激活码"`
	UserId   int64  `gorm:"not null;index:idx_user_id;comment:兑换者ID"`
	Username string `gorm:"type:varchar(128);not null;comment:兑换者用户名"`
	Ctime    int64
	Utime    int64
}
