package transport

import (
	"net/http"
	"strconv"

	"tabular/internal/pipeline"
	"tabular/internal/table"
)

// transform runs a pipeline document posted as the "pipeline" form field and
// returns one page of the result. Validation failures come back verbatim
// with 400; anything else is a generic 500.
func (h *handler) transform(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		writeError(w, http.StatusBadRequest, "page must be an integer >= 1")
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil || size < 1 || size > 1000 {
		writeError(w, http.StatusBadRequest, "size must be an integer between 1 and 1000")
		return
	}
	raw := r.PostFormValue("pipeline")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "pipeline form field is required")
		return
	}

	exec := pipeline.NewExecutor(h.registry, h.caps)
	result, err := exec.Run(r.Context(), raw)
	if err != nil {
		if pipeline.IsClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, table.Paginate(result.Table, page, size))
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
