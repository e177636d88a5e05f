package router

import "github.com/gin-gonic/gin"

// Registry collects modules and mounts them: API modules under /api, page
// modules at the root.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	Root        *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	pages       []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api, Root: &engine.RouterGroup}
}

// Use adds middleware to the /api group.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// AddPage registers a module that serves pages outside /api.
func (r *Registry) AddPage(mod Module) {
	r.pages = append(r.pages, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	for _, m := range r.pages {
		m.Register(r.Root)
	}
}
