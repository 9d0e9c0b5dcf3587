package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers API routes, page routes
// or both.
type Module interface {
	Register(api *gin.RouterGroup, pages *gin.RouterGroup)
}
