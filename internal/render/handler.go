package render

import (
	"bytes"
	"net/http"

	"github.com/banshee-data/sprinkler-layout/internal/httputil"
)

type pipeInfo struct {
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Sprinklers int     `json:"sprinklers"`
	LengthMM   float64 `json:"length_mm"`
}

type sceneInfo struct {
	Name                    string     `json:"name"`
	Fingerprint             string     `json:"fingerprint"`
	Pipes                   []pipeInfo `json:"pipes"`
	Sprinklers              int        `json:"sprinklers"`
	Connectors              int        `json:"connectors"`
	TotalConnectionLengthMM float64    `json:"total_connection_length_mm"`
	RoomAreaMM2             float64    `json:"room_area_mm2"`
}

// Handler serves the interactive view of h:
//
//	GET /             the standalone chart page
//	GET /plan.png     the plan view
//	GET /scene.json   scene summary
func Handler(h *Handle) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httputil.NotFound(w, "not found")
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			httputil.MethodNotAllowed(w)
			return
		}
		httputil.WriteContent(w, "text/html; charset=utf-8", h.html)
	})
	mux.HandleFunc("/plan.png", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.MethodNotAllowed(w)
			return
		}
		var buf bytes.Buffer
		if err := h.WritePlan(&buf, "png"); err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteContent(w, "image/png", buf.Bytes())
	})
	mux.HandleFunc("/scene.json", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httputil.MethodNotAllowed(w)
			return
		}
		httputil.WriteJSONOK(w, describe(h))
	})
	return mux
}

func describe(h *Handle) sceneInfo {
	sum := h.scene.Summarize()
	info := sceneInfo{
		Name:                    sum.Name,
		Fingerprint:             h.scene.Fingerprint().String(),
		Sprinklers:              len(h.scene.Sprinklers()),
		Connectors:              len(h.scene.Connectors()),
		TotalConnectionLengthMM: sum.TotalConnectionLength,
		RoomAreaMM2:             sum.RoomArea,
	}
	for _, p := range sum.Pipes {
		info.Pipes = append(info.Pipes, pipeInfo{
			Name:       p.Name,
			Color:      p.Color.Hex(),
			Sprinklers: p.Sprinklers,
			LengthMM:   p.Length,
		})
	}
	return info
}
