package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/pkg/sessiontoken"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
	"github.com/suleymanmyradov/lingua-gateway/shared/repository"
)

type CallbackLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewCallbackLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CallbackLogic {
	return &CallbackLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CallbackLogic) Callback(req *types.CallbackRequest) (*types.CallbackResponse, error) {
	ok, err := l.svcCtx.StateStore.Consume(l.ctx, req.State)
	if err != nil {
		return nil, apierr.Internal("failed to check oauth state", err)
	}
	if !ok {
		return nil, apierr.Unauthorized("unknown or expired oauth state")
	}

	googleUser, err := l.svcCtx.OAuthClient.Exchange(l.ctx, req.Code)
	if err != nil {
		return nil, apierr.Unauthorized("oauth code exchange failed")
	}

	user, err := l.svcCtx.UserRepo.GetByExternalID(l.ctx, googleUser.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		now := time.Now()
		user = &models.User{
			BaseModel: models.BaseModel{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ExternalID: googleUser.Subject,
			FirstName:  googleUser.GivenName,
			LastName:   googleUser.FamilyName,
			Username:   googleUser.Name,
			Role:       models.RoleUser,
			PhotoURL:   googleUser.Picture,
			Visible:    true,
		}
		if createErr := l.svcCtx.UserRepo.Create(l.ctx, user); createErr != nil {
			return nil, apierr.Internal("failed to create user", createErr)
		}
	} else if err != nil {
		return nil, apierr.Internal("failed to look up user", err)
	}

	token, err := l.svcCtx.TokenCodec.Issue(user.ID, sessiontoken.ClaimsFromGoogleUser(sessiontoken.GoogleUserInfo{
		Email:      googleUser.Email,
		Name:       googleUser.Name,
		GivenName:  googleUser.GivenName,
		FamilyName: googleUser.FamilyName,
		Picture:    googleUser.Picture,
	}))
	if err != nil {
		return nil, apierr.Internal("failed to issue session token", err)
	}

	return &types.CallbackResponse{JWT: token}, nil
}
