package v1

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/king120kw/research-weaver-sub001/internal/profile"
	"github.com/king120kw/research-weaver-sub001/plugin/llm"
	"github.com/king120kw/research-weaver-sub001/server/middleware"
	"github.com/king120kw/research-weaver-sub001/server/service/activity"
	"github.com/king120kw/research-weaver-sub001/server/service/chat"
	"github.com/king120kw/research-weaver-sub001/store"
)

// APIV1Service carries the HTTP surface of the service. The handlers are thin
// glue over the chat and activity services.
type APIV1Service struct {
	Profile         *profile.Profile
	Store           *store.Store
	ChatService     *chat.Service
	ActivityService *activity.Service

	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service wires the services from the profile and store.
func NewAPIV1Service(profile *profile.Profile, st *store.Store) *APIV1Service {
	gateway := llm.NewClient(&llm.Config{
		BaseURL: profile.GatewayBaseURL,
		APIKey:  profile.GatewayAPIKey,
		Model:   profile.GatewayModel,
	})

	return &APIV1Service{
		Profile:         profile,
		Store:           st,
		ChatService:     chat.NewService(st, gateway),
		ActivityService: activity.NewService(st),
		rateLimiter:     middleware.NewRateLimiter(),
	}
}

// Register attaches all v1 routes to the Echo instance.
func (s *APIV1Service) Register(echoServer *echo.Echo) {
	group := echoServer.Group("/api/v1")
	group.Use(echomw.CORS())

	group.POST("/chat", s.Chat, s.localRateLimit)

	group.POST("/conversations", s.CreateConversation)
	group.GET("/conversations/:uid/messages", s.ListConversationMessages)

	group.POST("/users/:user/activity", s.RecordActivity)
	group.GET("/users/:user/activity/days", s.ActiveDays)
	group.GET("/users/:user/activity/stats", s.ActivityStats)
}
