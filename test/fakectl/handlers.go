package fakectl

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/api"
)

func (c *Controller) Router() *httprouter.Router {
	r := httprouter.New()

	r.GET("/wm/onos/topology/links", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.links())
	}))
	r.GET("/wm/onos/topology/switches", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.Switches())
	}))
	r.GET("/wm/onos/flows/getsummary/:start/:count/json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.flows())
	}))
	r.GET("/wm/onos/registry/controllers/json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.activeControllers())
	}))
	r.GET("/wm/onos/registry/switches/json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.registry())
	}))

	// Deployment documents, served so a live dashboard can point at them.
	r.GET("/data/controllers.json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.controllers)
	}))
	r.GET("/data/configuration.json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.Configuration())
	}))

	r.POST("/wm/onos/datagrid/add/intents/json", c.stall(c.addIntents))
	r.GET("/wm/onos/datagrid/get/intents/:category/json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, c.Intents())
	}))
	r.GET("/wm/onos/datagrid/get/intent/:category/:id/json", c.stall(c.getIntent))
	r.DELETE("/wm/onos/datagrid/delete/intents/json", c.stall(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(w, r, map[string]int{"purged": c.purgeIntents()})
	}))
	return r
}

func (c *Controller) stall(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		if d := c.stallFor(r.URL.Path); d > 0 {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
			case <-r.Context().Done():
				return
			}
		}
		h(w, r, p)
	}
}

func (c *Controller) addIntents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	var intents []api.Intent
	if err := json.Unmarshal(b, &intents); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, r, c.applyIntents(intents))
}

func (c *Controller) getIntent(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	id := p.ByName("id")
	for _, i := range c.Intents() {
		if i.IntentID == id {
			writeJSON(w, r, i)
			return
		}
	}
	http.NotFound(w, r)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error(r.Context(), err)
		http.Error(w, "Internal Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(b)
	if err != nil {
		log.Error(r.Context(), err)
	}
}
