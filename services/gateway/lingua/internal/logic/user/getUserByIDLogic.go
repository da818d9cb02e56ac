package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/pkg/cache"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
)

type GetUserByIDLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetUserByIDLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetUserByIDLogic {
	return &GetUserByIDLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetUserByIDLogic) GetUserByID(req *types.GetUserByIDRequest) (*types.UserResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apierr.BadRequest("invalid user id")
	}

	u, err := l.svcCtx.UserSyncSvc.ByID(l.ctx, id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, apierr.NotFound("User does not exist")
	}
	if err != nil {
		return nil, apierr.Internal("failed to fetch user", err)
	}

	return toUserResponse(u), nil
}
