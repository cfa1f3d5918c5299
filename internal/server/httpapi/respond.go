// Package httpapi exposes the marketplace over REST: auth, profile, listing
// search/create/delete, and listing images.
package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rentafind/rentafind/internal/server/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// houseJSON is the wire shape of a listing, shared by search/my/add.
type houseJSON struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	PhoneNumber string    `json:"phoneNumber"`
	District    string    `json:"district"`
	City        string    `json:"city"`
	HasImage    bool      `json:"hasImage"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toHouseJSON(h *models.House) houseJSON {
	return houseJSON{
		ID:          h.ID,
		Type:        h.Type,
		PhoneNumber: h.PhoneNumber,
		District:    h.District,
		City:        h.City,
		HasImage:    h.HasImage,
		CreatedAt:   h.CreatedAt,
	}
}

func toHouseList(houses []*models.House) []houseJSON {
	// Empty result is an empty array on the wire, not null.
	out := make([]houseJSON, 0, len(houses))
	for _, h := range houses {
		out = append(out, toHouseJSON(h))
	}
	return out
}
