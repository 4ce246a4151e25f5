package handlers

import (
	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/middleware/ratelimit"
	"github.com/feedchain/backend/openapi"
	"github.com/feedchain/backend/server"
	"go.uber.org/fx"
)

func registerRoutes(h *Handler, srv *server.Server, docs *openapi.OpenAPI, cfg *config.Config, store ratelimit.Store) {
	h.RegisterRoutes(srv, docs, ratelimit.ForAuth(cfg, store))
}

var Module = fx.Options(
	fx.Provide(NewHandler),
	fx.Invoke(registerRoutes),
)
