package gateway

import (
	"net/http/pprof"

	"github.com/gin-gonic/gin"
)

const contentTypeJSON = "application/json; charset=utf-8"

// LookupHandle serves GET /?i=<identifier> and GET /?t=<title>.
func (g *Gateway) LookupHandle(c *gin.Context) {
	body, status, state := g.serve(c.Request.Context(), c.Request.URL.Query())
	c.Header("X-Cache", state)
	c.Data(status, contentTypeJSON, body)
}

// NewRouter builds the HTTP surface of the gateway. Profiling endpoints are
// only registered in debug mode.
func NewRouter(g *Gateway, debugMode bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	r.GET("/", g.LookupHandle)

	if debugMode {
		r.GET("/debug/pprof/", gin.WrapF(pprof.Index))
		r.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
		r.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
		r.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
		r.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	}
	return r
}
