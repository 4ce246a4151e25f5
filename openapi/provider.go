package openapi

import (
	"github.com/feedchain/backend/config"
	"go.uber.org/fx"
)

// NewDocument seeds the document with the service metadata, the bearer
// scheme and the route tags.
func NewDocument(cfg *config.Config) *OpenAPI {
	return New(cfg.App.Name, cfg.App.Version).
		Description("Food donation lifecycle: donors post surplus food, NGOs claim, pick up and distribute it.").
		BearerAuth(BearerScheme, "Access token returned by POST /auth/login").
		Tag("auth", "Registration and sign-in").
		Tag("food-posts", "Donor food posts and NGO discovery").
		Tag("claims", "Claim, pickup verification and distribution").
		Tag("impact", "Aggregate impact counters").
		Tag("admin", "Administrative views")
}

var Module = fx.Options(
	fx.Provide(NewDocument),
)
