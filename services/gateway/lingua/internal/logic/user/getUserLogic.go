package user

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/middleware"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
)

type GetUserLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetUserLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetUserLogic {
	return &GetUserLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetUser returns the identity the identity middleware resolved for this
// request (from a bearer session token or a verified init-data payload);
// there is no separate lookup here.
func (l *GetUserLogic) GetUser() (*types.UserResponse, error) {
	u, ok := middleware.UserFromContext(l.ctx)
	if !ok {
		return nil, apierr.Unauthorized("no authenticated user in context")
	}
	return toUserResponse(u), nil
}
