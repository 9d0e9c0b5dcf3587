package router

import (
	"github.com/userboard/userboard/internal/container"
	handlers "github.com/userboard/userboard/internal/interface/http"
	"github.com/userboard/userboard/internal/router/modules"
)

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup after the container has
// been populated.
func InitModules(r *Registry) {
	handler := handlers.NewDashboardHandler(container.GetService(), container.GetLogger())
	r.Add(modules.NewDashboardModule(handler))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
