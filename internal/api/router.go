package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router wraps a gin engine with a route table that refuses duplicate
// registrations: a second handler bound to the same method+path is a
// startup bug, not something to shadow silently.
type Router struct {
	engine *gin.Engine
	seen   map[string]bool
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{engine: engine, seen: make(map[string]bool)}
}

func (r *Router) Handle(method, path string, handlers ...gin.HandlerFunc) {
	key := method + " " + path
	if r.seen[key] {
		panic("api: route registered twice: " + key)
	}
	r.seen[key] = true
	r.engine.Handle(method, path, handlers...)
}

// RegisterRoutes binds every endpoint. All routes sit behind the auth
// middleware installed on the engine.
func RegisterRoutes(r *Router, app App) {
	r.Handle(http.MethodPost, "/feeding", PostFeeding(app))
	r.Handle(http.MethodGet, "/feeding", GetFeeding(app))
	r.Handle(http.MethodPost, "/diaper", PostDiaper(app))
	r.Handle(http.MethodGet, "/diaper", GetDiaper(app))
	r.Handle(http.MethodPost, "/sleeping", PostSleep(app))
	r.Handle(http.MethodGet, "/sleeping", GetSleep(app))
	r.Handle(http.MethodGet, "/history/:date", GetHistory(app))
	r.Handle(http.MethodGet, "/baby-profile", GetBabyProfile(app))
	r.Handle(http.MethodPost, "/baby-profile", PostBabyProfile(app))
	r.Handle(http.MethodDelete, "/baby-profile", DeleteBabyProfileGrowth(app))
}
