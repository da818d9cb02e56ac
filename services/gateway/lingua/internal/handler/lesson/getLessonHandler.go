// Code scaffolded by goctl. Safe to edit.
package lesson

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/logic/lesson"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/types"
)

func GetLessonHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LessonQueryRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := lesson.NewGetLessonLogic(r.Context(), svcCtx)
		resp, err := l.GetLesson(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			apierr.WriteOK(r.Context(), w, resp)
		}
	}
}
