package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rentafind/rentafind/internal/logging"
)

// RouterOptions tunes route mounting.
type RouterOptions struct {
	// Prefix is prepended to every API route (e.g. "/api" when the server is
	// reached directly rather than through a prefix-stripping proxy).
	Prefix string
	// StaticDir, when non-empty, is served at the root for everything the
	// API does not claim (the location JSON and an optional SPA build).
	StaticDir string
}

// NewRouter mounts the REST surface.
//
// Public:    POST {p}/auth/login, POST {p}/auth/signup,
//            GET {p}/houses/search, GET {p}/houses/image/{id},
//            GET {p}/houses/districts, GET {p}/houses/cities/{district}
// Bearer:    GET {p}/user/profile, POST {p}/user/update,
//            GET {p}/houses/my, POST {p}/houses/add, DELETE {p}/houses/{id}
func NewRouter(log logging.Logger, auth AuthAPI, users UserAPI, houses HouseAPI, opts RouterOptions) *mux.Router {
	h := &handlers{auth: auth, users: users, houses: houses, log: log}

	r := mux.NewRouter()
	r.Use(Logging(log))

	api := r
	if opts.Prefix != "" {
		api = r.PathPrefix(opts.Prefix).Subrouter()
	}

	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/signup", h.signup).Methods(http.MethodPost)
	api.HandleFunc("/houses/search", h.searchHouses).Methods(http.MethodGet)
	api.HandleFunc("/houses/image/{id}", h.houseImage).Methods(http.MethodGet)
	api.HandleFunc("/houses/districts", h.districts).Methods(http.MethodGet)
	api.HandleFunc("/houses/cities/{district}", h.citiesByDistrict).Methods(http.MethodGet)

	protected := api.NewRoute().Subrouter()
	protected.Use(Auth(auth))
	protected.HandleFunc("/user/profile", h.profile).Methods(http.MethodGet)
	protected.HandleFunc("/user/update", h.updateProfile).Methods(http.MethodPost)
	protected.HandleFunc("/houses/my", h.myHouses).Methods(http.MethodGet)
	protected.HandleFunc("/houses/add", h.addHouse).Methods(http.MethodPost)
	protected.HandleFunc("/houses/{id}", h.deleteHouse).Methods(http.MethodDelete)

	if opts.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(opts.StaticDir))).Methods(http.MethodGet)
	}

	return r
}
