package api

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type lookupHandler struct {
	responder Responder
	projects  ProjectLifecycle
}

func newLookupHandler(projects ProjectLifecycle) lookupHandler {
	logger := log.With().Str("handlerName", "lookupHandler").Logger()
	return lookupHandler{responder: NewResponder(logger), projects: projects}
}

// listTechnologies returns every technology ordered by label
// @Summary List technologies
// @Tags Lookups
// @Produce json
// @Success 200 {object} TechnologiesResponse
// @Router /admin/technologies [get]
func (h lookupHandler) listTechnologies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		technologies, err := h.projects.Technologies(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, TechnologiesResponse{Technologies: technologies})
	}
}

// listTypes returns every project type ordered by label
// @Summary List project types
// @Tags Lookups
// @Produce json
// @Success 200 {object} TypesResponse
// @Router /admin/types [get]
func (h lookupHandler) listTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := h.projects.Types(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, TypesResponse{Types: types})
	}
}
