//go:build wireinject

package code

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/passport/internal/code/internal/repository"
	"github.com/ecodeclub/passport/internal/code/internal/repository/cache"
	"github.com/ecodeclub/passport/internal/code/internal/service"
	"github.com/ecodeclub/passport/internal/code/internal/web"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, ec ecache.Cache, userSvc user.UserService) *Module {
	wire.Build(
		initDAO,
		initCodeGenerator,
		initInviteLimitCount,
		cache.NewInviteCodeECache,
		repository.NewActivationCodeRepository,
		service.NewService,
		service.NewAdminService,
		web.NewHandler,
		web.NewAdminHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}
