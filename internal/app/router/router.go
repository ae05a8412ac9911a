package router

import (
	coinhandler "coin_backend/internal/feature/coins/transport/handler"
	issuehandler "coin_backend/internal/feature/issues/transport/handler"
	platformhandler "coin_backend/internal/platform/http/handler"
	jwtmw "coin_backend/internal/platform/jwt"
	"coin_backend/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

// Handlers はルーティング対象のハンドラー一式です。
type Handlers struct {
	Health     *platformhandler.HealthHandler
	Coin       *coinhandler.CoinHandler
	AdminCoin  *coinhandler.AdminCoinHandler
	Issue      *issuehandler.IssueHandler
	AdminIssue *issuehandler.AdminIssueHandler
}

func NewRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	// 導通確認・監視
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")

	// 公開 API（認証不要）
	coins := v1.Group("/coins")
	{
		coins.GET("", h.Coin.ListCoins)
		coins.GET("/:coinId", h.Coin.GetCoinDetail)
		coins.GET("/:coinId/news", h.Coin.GetCoinNews)
		coins.GET("/:coinId/issues/:issueId", h.Issue.GetPublicDetail)
	}

	// 管理 API
	// → role=ADMIN の JWT が必要
	admin := v1.Group("/admin")
	admin.Use(jwtmw.AdminRequired()...)
	{
		admin.GET("/coins", h.AdminCoin.ListCoins)
		admin.GET("/coins/:coinId", h.AdminCoin.GetCoin)
		admin.PATCH("/coins/:coinId/display", h.AdminCoin.SetDisplay)

		admin.GET("/coins/:coinId/issues", h.AdminIssue.ListForAdmin)
		admin.POST("/coins/:coinId/issues", h.AdminIssue.Create)
		admin.GET("/issues/:issueId", h.AdminIssue.GetDetailForAdmin)
		admin.PUT("/issues/:issueId", h.AdminIssue.Update)
		admin.DELETE("/issues", h.AdminIssue.BulkSoftDelete)
	}

	return r
}
