package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rentafind/rentafind/internal/client/models"
)

// AuthResponse is the payload returned by POST /api/auth/login and
// /api/auth/signup.
type AuthResponse struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type housesResponse struct {
	Houses []models.House `json:"houses"`
}

// Login authenticates with username/password. The token is NOT installed on
// the client; session side effects belong to the auth controller.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := map[string]string{"username": username, "password": password}
	if err := c.JSON(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup registers a new account and returns the same payload as Login.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := map[string]string{"username": username, "email": email, "password": password}
	if err := c.JSON(ctx, http.MethodPost, "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile fetches the signed-in user's full account view.
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	if err := c.JSON(ctx, http.MethodGet, "/api/user/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile updates the mutable profile fields (currently the phone
// number) and returns the replaced user summary.
func (c *Client) UpdateProfile(ctx context.Context, phoneNumber string) (*models.UserSummary, error) {
	var resp struct {
		User models.UserSummary `json:"user"`
	}
	req := map[string]string{"phoneNumber": phoneNumber}
	if err := c.JSON(ctx, http.MethodPost, "/api/user/update", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// SearchHouses queries public listings, optionally filtered by district
// and/or city.
func (c *Client) SearchHouses(ctx context.Context, district, city string) ([]models.House, error) {
	q := url.Values{}
	if district != "" {
		q.Set("district", district)
	}
	if city != "" {
		q.Set("city", city)
	}
	path := "/api/houses/search"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp housesResponse
	if err := c.JSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Houses, nil
}

// MyHouses lists the signed-in user's own listings.
func (c *Client) MyHouses(ctx context.Context) ([]models.House, error) {
	var resp housesResponse
	if err := c.JSON(ctx, http.MethodGet, "/api/houses/my", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Houses, nil
}

// AddHouse creates a listing. image may be nil; a listing without an image
// is valid and reports hasImage=false.
func (c *Client) AddHouse(ctx context.Context, houseType, phoneNumber, district, city string, image []byte, imageName string) (*models.House, error) {
	fields := map[string]string{
		"type":        houseType,
		"phoneNumber": phoneNumber,
		"district":    district,
		"city":        city,
	}
	var resp struct {
		House models.House `json:"house"`
	}
	if err := c.Multipart(ctx, "/api/houses/add", fields, "image", imageName, image, &resp); err != nil {
		return nil, err
	}
	return &resp.House, nil
}

// DeleteHouse removes one of the signed-in user's listings.
func (c *Client) DeleteHouse(ctx context.Context, id string) error {
	return c.JSON(ctx, http.MethodDelete, fmt.Sprintf("/api/houses/%s", id), nil, nil)
}

// HouseImage fetches the raw image bytes for a listing.
func (c *Client) HouseImage(ctx context.Context, id string) ([]byte, error) {
	return c.GetBytes(ctx, fmt.Sprintf("/api/houses/image/%s", id))
}
