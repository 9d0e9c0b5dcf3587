package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/userboard/userboard/internal/interface/http"
)

// DashboardModule wires the dashboard pages and the users API.
// Pages: GET /, GET /charts/:name, GET /charts/:name/export
// API:   GET /api/users, GET /api/users/export/csv, POST /api/sync
type DashboardModule struct {
	Handler *handlers.DashboardHandler
}

func NewDashboardModule(h *handlers.DashboardHandler) *DashboardModule {
	return &DashboardModule{Handler: h}
}

func (m *DashboardModule) Register(api *gin.RouterGroup, pages *gin.RouterGroup) {
	pages.GET("/", m.Handler.Home)
	pages.GET("/charts/:name", m.Handler.Chart)
	pages.GET("/charts/:name/export", m.Handler.ChartExport)

	api.GET("/users", m.Handler.ListUsers)
	api.GET("/users/export/csv", m.Handler.ExportCSV)
	api.POST("/sync", m.Handler.SyncNow)
}
