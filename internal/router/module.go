package router

import "github.com/gin-gonic/gin"

// Module registers a feature's routes. API modules receive the /api group,
// page modules the root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
