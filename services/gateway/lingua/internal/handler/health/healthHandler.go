// Code scaffolded by goctl. Safe to edit.
package health

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/logic/health"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
)

func HealthHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := health.NewHealthLogic(r.Context(), svcCtx)
		resp, err := l.Health()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			apierr.WriteOKMessage(r.Context(), w, nil, resp.Status)
		}
	}
}
