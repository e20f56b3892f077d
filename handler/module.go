package handler

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/simpleserver/handler/schema"
)

func Module() fx.Option {
	return fx.Module("handler",
		// provide response writing
		fx.Provide(schema.New),
		fx.Provide(NewResponder),
		// provide handlers
		fx.Provide(
			NewWelcomeHandler,
			NewHealthHandler,
			NewHelloHandler,
			NewEchoHandler,
			NewSearchHandler,
			NewRandomHandler,
			NewInfoHandler,
		),
		// provide routes
		fx.Provide(
			NewWelcomeRoute,
			NewHealthRoute,
			NewHelloRoute,
			NewEchoRoute,
			NewSearchRoute,
			NewRandomRoute,
			NewInfoRoute,
		),
		// provide catch-all and fault handling
		fx.Provide(NewNotFoundHandler),
		fx.Provide(NewFaultResponder),
	)
}
