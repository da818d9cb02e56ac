// Code scaffolded by goctl. Safe to edit.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/handler/auth"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/handler/health"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/handler/lesson"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/handler/user"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/svc"
)

// RegisterHandlers wires the public and protected route groups. Every
// route, public or protected, first passes through ResponseHeaders; only
// the protected group additionally requires a fresh timestamp and a
// resolved identity, via either a bearer session token or a verified
// init-data payload.
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{Method: http.MethodGet, Path: "/health", Handler: health.HealthHandler(svcCtx)},
			{Method: http.MethodGet, Path: "/auth/login", Handler: auth.LoginHandler(svcCtx)},
			{Method: http.MethodGet, Path: "/auth/callback", Handler: auth.CallbackHandler(svcCtx)},
		},
		rest.WithMiddlewares([]rest.Middleware{svcCtx.ResponseHeaders}),
	)

	server.AddRoutes(
		[]rest.Route{
			{Method: http.MethodGet, Path: "/user", Handler: user.GetUserHandler(svcCtx)},
			{Method: http.MethodGet, Path: "/user/:id", Handler: user.GetUserByIDHandler(svcCtx)},
			{Method: http.MethodGet, Path: "/lesson", Handler: lesson.GetLessonHandler(svcCtx)},
		},
		rest.WithMiddlewares([]rest.Middleware{
			svcCtx.ResponseHeaders,
			svcCtx.TimestampGuard,
			svcCtx.Identity,
		}),
	)
}
