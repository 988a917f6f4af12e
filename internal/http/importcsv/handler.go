package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/comptoir/internal/http/respond"
	"github.com/MrJamesThe3rd/comptoir/internal/importer"
)

// maxUpload bounds the multipart form kept in memory.
const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/deliveries", h.importDelivery)
}

type bookedResponse struct {
	Row       int       `json:"row"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	OnHand    int       `json:"on_hand"`
	Created   bool      `json:"created"`
}

type importResponse struct {
	Lines   []bookedResponse `json:"lines"`
	Units   int              `json:"units"`
	Created int              `json:"created"`
	Error   string           `json:"error,omitempty"`
}

func toResponse(res *importer.Result) importResponse {
	resp := importResponse{
		Lines:   make([]bookedResponse, len(res.Lines)),
		Units:   res.Units,
		Created: res.Created,
	}

	for i, b := range res.Lines {
		resp.Lines[i] = bookedResponse{
			Row:       b.Row,
			ProductID: b.ProductID,
			Name:      b.Name,
			Quantity:  b.Quantity,
			OnHand:    b.OnHand,
			Created:   b.Created,
		}
	}

	return resp
}

// importDelivery takes a multipart form with the sheet in "file" and an
// optional delivery note number in "reference".
func (h *Handler) importDelivery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.svc.Import(r.Context(), file, importer.Params{
		Actor:     respond.Actor(r),
		Reference: r.FormValue("reference"),
	})

	switch {
	case err == nil:
		respond.JSON(w, http.StatusCreated, toResponse(res))
	case res != nil && len(res.Lines) > 0:
		// Part of the delivery is booked; report it alongside the failure.
		resp := toResponse(res)
		resp.Error = err.Error()
		respond.JSON(w, http.StatusMultiStatus, resp)
	default:
		respond.Error(w, r, err)
	}
}
