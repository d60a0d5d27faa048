package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"github.com/nguyentranbao-ct/product-dash/internal/config"
	"github.com/nguyentranbao-ct/product-dash/internal/repo/productapi"
	"github.com/nguyentranbao-ct/product-dash/internal/server"
	"github.com/nguyentranbao-ct/product-dash/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", "config", conf)
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			productapi.NewClient,
			newSyncEngine,

			usecase.NewDashboardUsecase,

			server.NewController,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
