package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kisan/entities"
	assistantCtrlImp "kisan/pkg/assistant/controllerImp"
	authCtrlImp "kisan/pkg/auth/controllerImp"
	"kisan/pkg/auth/token"
	chatCtrlImp "kisan/pkg/chat/controllerImp"
	cropCtrlImp "kisan/pkg/crop/controllerImp"
	dashboardCtrlImp "kisan/pkg/dashboard/controllerImp"
	expenseCtrlImp "kisan/pkg/expense/controllerImp"
	farmCtrlImp "kisan/pkg/farm/controllerImp"
	healthCtrlImp "kisan/pkg/health/controllerImp"
	marketCtrlImp "kisan/pkg/market/controllerImp"
	"kisan/pkg/middleware"
	pestCtrlImp "kisan/pkg/pest/controllerImp"
	schemeCtrlImp "kisan/pkg/scheme/controllerImp"
	taskCtrlImp "kisan/pkg/task/controllerImp"
	userCtrlImp "kisan/pkg/user/controllerImp"
	"kisan/pkg/validate"
	weatherCtrlImp "kisan/pkg/weather/controllerImp"
)

type Controllers struct {
	Auth      *authCtrlImp.AuthCtrl
	User      *userCtrlImp.UserCtrl
	Farm      *farmCtrlImp.FarmCtrl
	Expense   *expenseCtrlImp.ExpenseCtrl
	Task      *taskCtrlImp.TaskCtrl
	Crop      *cropCtrlImp.CropCtrl
	Weather   *weatherCtrlImp.WeatherCtrl
	Assistant *assistantCtrlImp.AssistantCtrl
	Pest      *pestCtrlImp.PestCtrl
	Market    *marketCtrlImp.MarketCtrl
	Scheme    *schemeCtrlImp.SchemeCtrl
	Chat      *chatCtrlImp.ChatCtrl
	Dashboard *dashboardCtrlImp.DashboardCtrl
	Health    *healthCtrlImp.HealthCtrl
}

type Options struct {
	Maker       token.Maker
	Accounts    middleware.Accounts
	CORSOrigins []string
	// Registry receives the HTTP metrics and is served on /metrics.
	Registry *prometheus.Registry
}

func New(e *echo.Echo, ctl Controllers, opt Options) *echo.Echo {
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = validate.Echo{}

	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestID())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: opt.CORSOrigins}))
	e.Use(echoMiddleware.BodyLimit("10M"))
	e.Use(middleware.RequestLog())
	if opt.Registry != nil {
		e.Use(middleware.NewMetrics(opt.Registry).Middleware())
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opt.Registry, promhttp.HandlerOpts{})))
	}

	api := e.Group("/api")
	api.GET("/health", ctl.Health.Health)
	api.POST("/auth/register", ctl.Auth.Register)
	api.POST("/auth/login", ctl.Auth.Login)

	authed := api.Group("", middleware.Auth(opt.Maker, opt.Accounts, false))
	admin := middleware.RequireRole(entities.RoleAdmin)

	authed.GET("/auth/me", ctl.Auth.WhoAmI)

	authed.GET("/user/profile", ctl.User.Get)
	authed.PUT("/user/profile", ctl.User.Update)
	authed.DELETE("/user/profile", ctl.User.Delete)

	authed.GET("/dashboard", ctl.Dashboard.Get)

	authed.GET("/farm", ctl.Farm.List)
	authed.POST("/farm", ctl.Farm.Create)
	authed.GET("/farm/:id", ctl.Farm.Get)
	authed.PUT("/farm/:id", ctl.Farm.Update)
	authed.DELETE("/farm/:id", ctl.Farm.Delete)

	authed.GET("/expenses", ctl.Expense.List)
	authed.POST("/expenses", ctl.Expense.Create)
	authed.GET("/expenses/summary", ctl.Expense.Summary)
	authed.GET("/expenses/export", ctl.Expense.Export)
	authed.PUT("/expenses/:id", ctl.Expense.Update)
	authed.DELETE("/expenses/:id", ctl.Expense.Delete)
	authed.GET("/income", ctl.Expense.GetIncome)
	authed.PUT("/income", ctl.Expense.PutIncome)

	authed.GET("/tasks", ctl.Task.List)
	authed.POST("/tasks", ctl.Task.Create)
	authed.PUT("/tasks/:id", ctl.Task.Patch)
	authed.PATCH("/tasks/:id", ctl.Task.Patch)
	authed.DELETE("/tasks/:id", ctl.Task.Delete)

	authed.GET("/crops", ctl.Crop.List)
	authed.POST("/crops/recommendations", ctl.Crop.Recommend)
	authed.POST("/crops/advice", ctl.Crop.Advice)
	authed.GET("/crops/search/:query", ctl.Crop.Search)
	authed.GET("/crops/:cropId", ctl.Crop.Get)

	authed.GET("/weather/:district", ctl.Weather.Get)
	authed.POST("/assistant/chat", ctl.Assistant.Chat)

	authed.GET("/pests/crop/:cropName", ctl.Pest.ByCrop)
	authed.GET("/pests/search/:query", ctl.Pest.Search)
	authed.POST("/pests/report", ctl.Pest.Report)
	authed.POST("/pests/identify", ctl.Pest.Identify)

	authed.GET("/market/prices", ctl.Market.Prices)
	authed.GET("/market/trends/:cropName", ctl.Market.Trends)
	authed.GET("/market/trends/:cropName/:days", ctl.Market.Trends)
	authed.POST("/market/prices", ctl.Market.Add, admin)
	authed.POST("/market/import", ctl.Market.Import, admin)

	authed.GET("/schemes", ctl.Scheme.List)
	authed.POST("/schemes", ctl.Scheme.Create, admin)
	authed.POST("/schemes/eligible", ctl.Scheme.Eligible)
	authed.GET("/schemes/:schemeId", ctl.Scheme.Get)

	authed.GET("/chat/users", ctl.Chat.Users)
	authed.GET("/chat/messages/:userId", ctl.Chat.Messages)
	authed.POST("/chat/send", ctl.Chat.Send)
	authed.PUT("/chat/status", ctl.Chat.Status)
	authed.GET("/chat/conversations", ctl.Chat.Conversations)
	authed.GET("/chat/unread-count", ctl.Chat.UnreadCount)
	// Browsers cannot set headers on a websocket handshake.
	api.GET("/chat/stream", ctl.Chat.Stream, middleware.Auth(opt.Maker, opt.Accounts, true))

	return e
}
