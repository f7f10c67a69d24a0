//go:build wireinject

package identity

import (
	"github.com/ecodeclub/passport/internal/identity/internal/repository"
	"github.com/ecodeclub/passport/internal/identity/internal/service"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component, userSvc user.UserService) *Module {
	wire.Build(
		initDAO,
		initOAuth2Service,
		initStateTokenGenerator,
		initHandler,
		repository.NewThirdPartyIdentityRepository,
		service.NewService,
		wire.Struct(new(Module), "*"),
	)
	return new(Module)
}
