package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/logging"
	"github.com/rentafind/rentafind/internal/server/models"
)

// AuthAPI is the slice of the auth service the handlers need.
type AuthAPI interface {
	TokenValidator
	Signup(ctx context.Context, username, email, password, phoneNumber string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
}

// UserAPI covers the profile endpoints.
type UserAPI interface {
	Profile(ctx context.Context, id string) (*models.User, error)
	UpdatePhoneNumber(ctx context.Context, id, phoneNumber string) (*models.User, error)
}

// HouseAPI covers the listing endpoints.
type HouseAPI interface {
	Add(ctx context.Context, ownerID, houseType, phoneNumber, district, city string, image []byte, contentType string) (*models.House, error)
	Search(ctx context.Context, district, city string) ([]*models.House, error)
	Mine(ctx context.Context, ownerID string) ([]*models.House, error)
	Delete(ctx context.Context, ownerID, id string) error
	Image(ctx context.Context, id string) ([]byte, string, error)
	Districts(ctx context.Context) ([]string, error)
	CitiesByDistrict(ctx context.Context, district string) ([]string, error)
}

type handlers struct {
	auth   AuthAPI
	users  UserAPI
	houses HouseAPI
	log    logging.Logger
}

// maxImageSize bounds multipart uploads (form fields included).
const maxImageSize = 10 << 20

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

type authResponse struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, ID: user.ID, Username: user.Username, Email: user.Email})
}

func (h *handlers) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, token, err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, common.ErrorUsernameTaken) || errors.Is(err, common.ErrorEmailTaken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, ID: user.ID, Username: user.Username, Email: user.Email})
}

func (h *handlers) profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"phoneNumber": user.PhoneNumber,
		"createdAt":   user.CreatedAt,
	})
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdatePhoneNumber(r.Context(), userID, req.PhoneNumber)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user": map[string]any{
			"id":          user.ID,
			"username":    user.Username,
			"email":       user.Email,
			"phoneNumber": user.PhoneNumber,
		},
	})
}

func (h *handlers) searchHouses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	houses, err := h.houses.Search(r.Context(), q.Get("district"), q.Get("city"))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"houses": toHouseList(houses)})
}

func (h *handlers) myHouses(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	houses, err := h.houses.Mine(r.Context(), userID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"houses": toHouseList(houses)})
}

func (h *handlers) addHouse(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	houseType := r.FormValue("type")
	phoneNumber := r.FormValue("phoneNumber")
	district := r.FormValue("district")
	city := r.FormValue("city")
	if houseType == "" || district == "" || city == "" {
		writeError(w, http.StatusBadRequest, "type, district and city are required")
		return
	}

	image, contentType, err := readImagePart(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "error processing image")
		return
	}

	house, err := h.houses.Add(r.Context(), userID, houseType, phoneNumber, district, city, image, contentType)
	if err != nil {
		h.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "House added successfully",
		"house":   toHouseJSON(house),
	})
}

// readImagePart extracts the optional image file from the form. A missing
// part is not an error; the listing is simply published without an image.
func readImagePart(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return nil, "", err
	}
	return data, header.Header.Get("Content-Type"), nil
}

func (h *handlers) deleteHouse(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.houses.Delete(r.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "listing not found")
		case errors.Is(err, common.ErrorForbidden):
			writeError(w, http.StatusForbidden, "not your listing")
		default:
			h.internalError(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) houseImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, contentType, err := h.houses.Image(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "image not found")
			return
		}
		h.internalError(w, r, err)
		return
	}

	if contentType == "" {
		contentType = "image/jpeg"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handlers) districts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.houses.Districts(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if districts == nil {
		districts = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"districts": districts})
}

func (h *handlers) citiesByDistrict(w http.ResponseWriter, r *http.Request) {
	district := mux.Vars(r)["district"]
	cities, err := h.houses.CitiesByDistrict(r.Context(), district)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if cities == nil {
		cities = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"cities": cities})
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeJSON(r *http.Request, out any) error {
	defer func() { _, _ = io.Copy(io.Discard, r.Body) }()
	return json.NewDecoder(r.Body).Decode(out)
}
