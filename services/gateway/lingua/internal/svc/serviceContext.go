// Code scaffolded by goctl. Safe to edit.
package svc

import (
	"net"
	"net/http"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest"

	"github.com/suleymanmyradov/lingua-gateway/internal/lesson"
	"github.com/suleymanmyradov/lingua-gateway/internal/usersync"
	"github.com/suleymanmyradov/lingua-gateway/pkg/authpayload"
	"github.com/suleymanmyradov/lingua-gateway/pkg/cache"
	"github.com/suleymanmyradov/lingua-gateway/pkg/llmgen"
	"github.com/suleymanmyradov/lingua-gateway/pkg/sessiontoken"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/config"
	"github.com/suleymanmyradov/lingua-gateway/services/gateway/lingua/internal/middleware"
	"github.com/suleymanmyradov/lingua-gateway/shared/models"
	"github.com/suleymanmyradov/lingua-gateway/shared/repository"
	rediscon "github.com/suleymanmyradov/lingua-gateway/third_party/cache"
	"github.com/suleymanmyradov/lingua-gateway/third_party/database"
	"github.com/suleymanmyradov/lingua-gateway/third_party/oauth"
)

type ServiceContext struct {
	Config config.Config

	UserRepo   *repository.UserRepository
	LessonRepo *repository.LessonRepository

	Verifier    *authpayload.Verifier
	TokenCodec  *sessiontoken.Codec
	OAuthClient *oauth.Client
	LessonSvc   *lesson.Service
	UserSyncSvc *usersync.Service
	StateStore  *oauthStateStore

	Identity        rest.Middleware
	TimestampGuard  rest.Middleware
	ResponseHeaders rest.Middleware
}

func NewServiceContext(c config.Config) *ServiceContext {
	db, err := database.NewPostgresConnection(c.Database)
	if err != nil {
		logx.Must(err)
	}

	redisConn, err := rediscon.NewRedisConnection(c.Redis)
	if err != nil {
		logx.Must(err)
	}
	redisClient := redisConn.GetClient()

	userRepo := repository.NewUserRepository(db)
	lessonRepo := repository.NewLessonRepository(db)

	userCache, err := cache.New[models.User](c.Cache.NearCapacity,
		time.Duration(c.Cache.NearTTL)*time.Second, time.Duration(c.Cache.FarTTL)*time.Second,
		redisClient, cache.JSONSerDe[models.User]{})
	if err != nil {
		logx.Must(err)
	}

	verifier := authpayload.NewVerifier(c.Auth.BotToken)
	tokenCodec := sessiontoken.NewCodec(c.Auth.SessionSecret, c.Auth.SessionExpire)

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
			DialContext: (&net.Dialer{
				Timeout: 10 * time.Second,
			}).DialContext,
		},
	}

	oauthClient := oauth.NewClient(c.OAuth.ClientID, c.OAuth.ClientSecret, c.OAuth.RedirectURL, httpClient)
	llmClient := llmgen.NewClient(c.LLM.APIKey, c.LLM.Model)
	lessonSvc := lesson.NewService(lessonRepo, llmClient)
	userSyncSvc := usersync.NewService(userRepo, userCache)
	stateStore := newOAuthStateStore(redisClient, 300*time.Second)

	identity := middleware.NewIdentityMiddleware(verifier, userSyncSvc, tokenCodec, userSyncSvc)

	return &ServiceContext{
		Config:          c,
		UserRepo:        userRepo,
		LessonRepo:      lessonRepo,
		Verifier:        verifier,
		TokenCodec:      tokenCodec,
		OAuthClient:     oauthClient,
		LessonSvc:       lessonSvc,
		UserSyncSvc:     userSyncSvc,
		StateStore:      stateStore,
		Identity:        identity.Handle,
		TimestampGuard:  middleware.TimestampGuardMiddleware,
		ResponseHeaders: middleware.ResponseHeadersMiddleware,
	}
}
