package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ginx/session"
	"github.com/ecodeclub/passport/internal/code"
	"github.com/ecodeclub/passport/internal/identity"
	"github.com/ecodeclub/passport/internal/pkg/middleware"
	"github.com/ecodeclub/passport/internal/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	um *user.Module,
	cm *code.Module,
	im *identity.Module,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许我的域名过来的
			return strings.Contains(origin, "freelog.com")
		},
	}))
	res.Use(middleware.NewMetricsBuilder().Build())
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	um.Hdl.PublicRoutes(res.Engine)
	im.Hdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	um.Hdl.PrivateRoutes(res.Engine)
	cm.Hdl.PrivateRoutes(res.Engine)
	cm.AdminHdl.PrivateRoutes(res.Engine)
	im.Hdl.PrivateRoutes(res.Engine)
	return res
}
