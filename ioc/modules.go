package ioc

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/passport/internal/code"
	"github.com/ecodeclub/passport/internal/identity"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/ego-component/egorm"
)

func initUserModule(db *egorm.Component, ec ecache.Cache, q mq.MQ) *user.Module {
	return user.InitModule(db, ec, q)
}

func initCodeModule(db *egorm.Component, ec ecache.Cache, um *user.Module) *code.Module {
	return code.InitModule(db, ec, um.Svc)
}

func initIdentityModule(db *egorm.Component, um *user.Module) *identity.Module {
	return identity.InitModule(db, um.Svc)
}
