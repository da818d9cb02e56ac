package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
)

type LoginLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewLoginLogic(ctx context.Context, svcCtx *svc.ServiceContext) *LoginLogic {
	return &LoginLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *LoginLogic) Login() (*types.LoginResponse, error) {
	state := uuid.New().String()
	if err := l.svcCtx.StateStore.Put(l.ctx, state); err != nil {
		return nil, apierr.Internal("failed to store oauth state", err)
	}

	return &types.LoginResponse{URL: l.svcCtx.OAuthClient.AuthCodeURL(state)}, nil
}
