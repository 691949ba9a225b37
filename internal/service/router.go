package service

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/divvyhq/divvy/internal/auth"
	"github.com/divvyhq/divvy/internal/currency"
	"github.com/divvyhq/divvy/internal/middleware"
	"github.com/divvyhq/divvy/internal/storage"
)

// NewRouter wires every endpoint onto a gin engine with logging, metrics
// and CORS applied to all routes and JWT auth on everything except
// registration, login and /metrics.
func NewRouter(store storage.Store, converter *currency.Converter, authenticator auth.Authenticator, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.Default())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authSvc := NewAuthService(authenticator, jwtManager, store)
	groupSvc := NewGroupService(store, converter)
	expenseSvc := NewExpenseService(store)

	api := r.Group("/api")
	api.POST("/auth/register", authSvc.Register)
	api.POST("/auth/login", authSvc.Login)

	protected := api.Group("", middleware.RequireAuth(jwtManager))
	protected.GET("/me", authSvc.Me)
	protected.PUT("/me/currency", authSvc.UpdateCurrency)

	protected.POST("/groups", groupSvc.CreateGroup)
	protected.GET("/groups", groupSvc.ListGroups)
	protected.POST("/groups/join", groupSvc.JoinGroup)
	protected.GET("/groups/:id", groupSvc.GetGroup)
	protected.POST("/groups/:id/leave", groupSvc.LeaveGroup)
	protected.GET("/groups/:id/balances", groupSvc.GetGroupBalances)

	protected.POST("/groups/:id/expenses", expenseSvc.CreateExpense)
	protected.GET("/groups/:id/expenses", expenseSvc.ListExpenses)
	protected.GET("/groups/:id/expenses/:expenseId", expenseSvc.GetExpense)
	protected.PUT("/groups/:id/expenses/:expenseId", expenseSvc.UpdateExpense)
	protected.DELETE("/groups/:id/expenses/:expenseId", expenseSvc.DeleteExpense)

	return r
}
