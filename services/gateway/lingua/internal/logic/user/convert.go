package user

import (
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
)

func toUserResponse(u *models.User) *types.UserResponse {
	return &types.UserResponse{
		ID:         u.ID.String(),
		ExternalID: u.ExternalID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
		PhotoURL:   u.PhotoURL,
		Language:   u.Language,
	}
}
