package lesson

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/middleware"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
)

type GetLessonLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetLessonLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetLessonLogic {
	return &GetLessonLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetLessonLogic) GetLesson(req *types.LessonQueryRequest) (*types.LessonResponse, error) {
	u, ok := middleware.UserFromContext(l.ctx)
	if !ok {
		return nil, apierr.Unauthorized("no authenticated user in context")
	}

	result, err := l.svcCtx.LessonSvc.Select(l.ctx, u.ID, req.StudiedLanguage, req.LessonLanguage, req.Level)
	if err != nil {
		return nil, apierr.Internal("failed to select lesson", err)
	}

	return &types.LessonResponse{
		LessonID: result.UserLessonID.String(),
		Lesson:   []byte(result.Payload),
	}, nil
}
