package handlers

import (
	"net/http"

	"local-library/internal/catalog"
	"local-library/internal/session"
)

// IndexHandler obsługuje stronę główną
type IndexHandler struct {
	browse   *catalog.BrowseService
	sessions *session.Manager
	render   *Renderer
}

// NewIndexHandler tworzy nowy handler strony głównej
func NewIndexHandler(browse *catalog.BrowseService, sessions *session.Manager, render *Renderer) *IndexHandler {
	return &IndexHandler{browse: browse, sessions: sessions, render: render}
}

// ServeHTTP obsługuje żądanie GET /
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	stats, err := h.browse.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	sess, err := h.sessions.Start(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	visits := h.sessions.Visit(sess.ID)

	data := NewTemplateData(r)
	data["Stats"] = stats
	data["NumVisits"] = visits

	h.render.Render(w, http.StatusOK, "index.html", data)
}
