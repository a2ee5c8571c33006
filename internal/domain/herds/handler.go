package herds

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/api/herds", func(hr chi.Router) {
		hr.Get("/", listHerdsHandler(svc))
		hr.Post("/", createHerdHandler(svc))

		hr.Get("/{herdID}", getHerdHandler(svc))
		hr.Put("/{herdID}", updateHerdHandler(svc))
		hr.Delete("/{herdID}", deleteHerdHandler(svc))
	})
}

type herdRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type herdResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func createHerdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req herdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.Create(r.Context(), CreateInput{Name: req.Name, Description: req.Description})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toHerdResponse(h))
	}
}

func listHerdsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]herdResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHerdResponse(h))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHerdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "herdID"))
		if err != nil {
			http.Error(w, "herd not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toHerdResponse(h))
	}
}

func updateHerdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req herdRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		h, err := svc.Update(r.Context(), chi.URLParam(r, "herdID"), CreateInput{Name: req.Name, Description: req.Description})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "herd not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toHerdResponse(h))
	}
}

func deleteHerdHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "herdID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "herd not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toHerdResponse(h Herd) herdResponse {
	return herdResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para no crear helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
