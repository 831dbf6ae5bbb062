package assistant

import (
	"github.com/finvo/finvo/internal/assistant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assistant.service",
	fx.Provide(service.NewCompletionClient),
	fx.Provide(service.New),
)
