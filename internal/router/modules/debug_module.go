package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes pipeline counters via expvar.
func (m *DebugModule) Register(_ *gin.RouterGroup, pages *gin.RouterGroup) {
	pages.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
