package invoice

import (
	"github.com/finvo/finvo/internal/invoice/repository"
	"github.com/finvo/finvo/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.New),
	fx.Provide(service.NewService),
)
