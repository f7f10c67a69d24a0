//go:build wireinject

package user

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/passport/internal/user/internal/repository"
	"github.com/ecodeclub/passport/internal/user/internal/repository/cache"
	"github.com/ecodeclub/passport/internal/user/internal/service"
	"github.com/ecodeclub/passport/internal/user/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) *Module {
	wire.Build(
		initDAO,
		cache.NewUserECache,
		repository.NewCachedUserRepository,
		initRegistrationEventProducer,
		service.NewUserService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}
