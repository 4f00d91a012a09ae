package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/luno/jettison/errors"
	"github.com/luno/jettison/log"

	"github.com/luno/topodash/api/render"
	"github.com/luno/topodash/server/ops"
)

func GetModelHandler(d Deps) httprouter.Handle {
	return snapshotHandler(d, func(s ops.Snapshot, _ httprouter.Params) (any, error) {
		return s.Model, nil
	})
}

func GetTopologyHandler(d Deps) httprouter.Handle {
	return snapshotHandler(d, func(s ops.Snapshot, _ httprouter.Params) (any, error) {
		return s.Topology, nil
	})
}

type controllersResponse struct {
	Controllers []render.ControllerBar `json:"controllers"`
	Updated     int64                  `json:"updated"`
}

func GetControllersHandler(d Deps) httprouter.Handle {
	return snapshotHandler(d, func(s ops.Snapshot, _ httprouter.Params) (any, error) {
		return controllersResponse{
			Controllers: s.Topology.Controllers,
			Updated:     s.Topology.Updated,
		}, nil
	})
}

type pathResponse struct {
	Src  string   `json:"src"`
	Dst  string   `json:"dst"`
	Path []string `json:"path"`
}

func GetPathHandler(d Deps) httprouter.Handle {
	return snapshotHandler(d, func(s ops.Snapshot, p httprouter.Params) (any, error) {
		src, dst := p.ByName("src"), p.ByName("dst")
		path, err := s.Paths.Shortest(src, dst)
		if err != nil {
			return nil, err
		}
		return pathResponse{Src: src, Dst: dst, Path: path}, nil
	})
}

func snapshotHandler(d Deps, get func(ops.Snapshot, httprouter.Params) (any, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		ctx := r.Context()
		snap, err := d.Topology().Snapshot()
		if errors.Is(err, ops.ErrNoSnapshot) {
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		} else if err != nil {
			log.Error(ctx, err)
			http.Error(w, "Internal Error", http.StatusInternalServerError)
			return
		}

		resp, err := get(snap, p)
		if errors.Is(err, ops.ErrPathNotFound) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			log.Error(ctx, err)
			http.Error(w, "Internal Error", http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(resp)
		if err != nil {
			log.Error(ctx, errors.Wrap(err, "json marshal"))
			http.Error(w, "Internal Error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, err = w.Write(b)
		if err != nil {
			log.Error(ctx, err)
		}
	}
}
