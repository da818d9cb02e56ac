// Code scaffolded by goctl. Safe to edit.
package auth

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/suleymanmyradov/lingua-gateway/internal/apierr"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/logic/auth"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
)

func LoginHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := auth.NewLoginLogic(r.Context(), svcCtx)
		resp, err := l.Login()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			apierr.WriteOK(r.Context(), w, resp)
		}
	}
}
