package auth

import (
	"github.com/finvo/finvo/internal/auth/repository"
	"github.com/finvo/finvo/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
