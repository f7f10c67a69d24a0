package repository

import (
	"context"

	"github.com/ecodeclub/passport/internal/user/internal/domain"
	"github.com/ecodeclub/passport/internal/user/internal/repository/cache"
	"github.com/ecodeclub/passport/internal/user/internal/repository/dao"
)

var (
	ErrUserNotFound  = dao.ErrDataNotFound
	ErrUserDuplicate = dao.ErrUserDuplicate
)

//go:generate mockgen -source=./user.go -package=repomocks -destination=mocks/user.mock.go UserRepository
type UserRepository interface {
	Create(ctx context.Context, u domain.User) (int64, error)
	// Update 更新数据，只有非 0 值才会更新
	Update(ctx context.Context, u domain.User) error
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindById(ctx context.Context, id int64) (domain.User, error)
	// FindByIdWithPassword 绕开缓存直查数据库，带回密码哈希。
	// 缓存里的用户是抹掉密码的，二次认证必须走这里。
	FindByIdWithPassword(ctx context.Context, id int64) (domain.User, error)
}

// CachedUserRepository 使用了缓存的 repository 实现
type CachedUserRepository struct {
	dao   dao.UserDAO
	cache cache.UserCache
}

// NewCachedUserRepository 支持缓存的实现
func NewCachedUserRepository(d dao.UserDAO,
	c cache.UserCache) UserRepository {
	return &CachedUserRepository{
		dao:   d,
		cache: c,
	}
}

func (ur *CachedUserRepository) Update(ctx context.Context, u domain.User) error {
	err := ur.dao.UpdateNonZeroFields(ctx, dao.User{
		Id:       u.Id,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
	})
	if err != nil {
		return err
	}
	return ur.cache.Delete(ctx, u.Id)
}

func (ur *CachedUserRepository) Create(ctx context.Context, u domain.User) (int64, error) {
	return ur.dao.Insert(ctx, dao.User{
		Username: u.Username,
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		SN:       u.SN,
		Password: u.Password,
	})
}

func (ur *CachedUserRepository) FindByUsername(ctx context.Context,
	username string) (domain.User, error) {
	u, err := ur.dao.FindByUsername(ctx, username)
	return ur.entityToDomain(u), err
}

func (ur *CachedUserRepository) FindById(ctx context.Context,
	id int64) (domain.User, error) {
	u, err := ur.cache.Get(ctx, id)
	if err == nil {
		return u, err
	}
	ue, err := ur.dao.FindById(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	u = ur.entityToDomain(ue)
	// 忽略掉这里的错误
	_ = ur.cache.Set(ctx, u)
	return u, nil
}

func (ur *CachedUserRepository) FindByIdWithPassword(ctx context.Context,
	id int64) (domain.User, error) {
	ue, err := ur.dao.FindById(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return ur.entityToDomain(ue), nil
}

func (ur *CachedUserRepository) entityToDomain(ue dao.User) domain.User {
	return domain.User{
		Id:       ue.Id,
		Username: ue.Username,
		Nickname: ue.Nickname,
		SN:       ue.SN,
		Avatar:   ue.Avatar,
		Password: ue.Password,
	}
}
