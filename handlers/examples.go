package handlers

import (
	"github.com/feedchain/backend/models"
	"github.com/feedchain/backend/services/auth"
)

// Zero values used only to derive response schemas.
var (
	authTokenExample    = auth.Token{}
	foodPostExample     = models.FoodPost{}
	foodPostListExample = []models.FoodPost{}
	claimListExample    = []models.Claim{}
)
