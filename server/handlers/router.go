package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const basePath = "/topodash"

type Router interface {
	GET(path string, handle httprouter.Handle)
}

type subRouter struct {
	r    Router
	base string
}

func SubRouter(r Router, basePath string) Router {
	return subRouter{r: r, base: basePath}
}

func (r subRouter) GET(path string, handle httprouter.Handle) {
	p := r.base + path
	r.r.GET(p, wrap(p, handle))
}

func wrap(path string, handle httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		t0 := time.Now()
		handle(w, r, p)
		httpHandle.WithLabelValues(path).Observe(time.Since(t0).Seconds())
	}
}

func CreateRouter(d Deps) *httprouter.Router {
	r := httprouter.New()
	dash := SubRouter(r, basePath)

	dash.GET("/api/model", GetModelHandler(d))
	dash.GET("/api/topology", GetTopologyHandler(d))
	dash.GET("/api/controllers", GetControllersHandler(d))
	dash.GET("/api/path/:src/:dst", GetPathHandler(d))

	createWebApp(dash)

	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, basePath+"/api/") {
			http.NotFound(w, r)
		} else if strings.HasPrefix(r.URL.Path, basePath+"/") {
			serveIndex(w, r, nil)
		} else {
			http.Redirect(w, r, basePath+"/", http.StatusTemporaryRedirect)
		}
	})
	return r
}

func CreateDebugRouter(d Deps) *httprouter.Router {
	r := httprouter.New()
	r.Handler(http.MethodGet, "/debug/metrics", promhttp.Handler())
	r.HandlerFunc(http.MethodGet, "/debug/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !d.Topology().Ready() {
			http.Error(w, "no topology yet", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
