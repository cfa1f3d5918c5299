package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/server/models"
	"github.com/rentafind/rentafind/internal/server/repositories/houses"
	"github.com/rentafind/rentafind/internal/server/storage"
)

// HouseService manages listings and their images. Listings are immutable
// after creation; only the owner may delete one.
type HouseService struct {
	houses houses.Repository
	images storage.ImageStore
}

func NewHouseService(houses houses.Repository, images storage.ImageStore) *HouseService {
	return &HouseService{houses: houses, images: images}
}

// Add creates a listing for ownerID. image may be nil; the listing is then
// published without one.
func (s *HouseService) Add(ctx context.Context, ownerID, houseType, phoneNumber, district, city string, image []byte, contentType string) (*models.House, error) {
	house := &models.House{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Type:        houseType,
		PhoneNumber: phoneNumber,
		District:    district,
		City:        city,
		HasImage:    len(image) > 0,
	}

	house, err := s.houses.Create(ctx, house)
	if err != nil {
		return nil, fmt.Errorf("creating listing: %w", err)
	}

	if len(image) > 0 {
		if contentType == "" {
			contentType = "image/jpeg"
		}
		if err := s.images.Save(ctx, house.ID, image, contentType); err != nil {
			// The listing exists; degrade to an image-less one rather than
			// failing the whole create.
			house.HasImage = false
			if uerr := s.houses.SetHasImage(ctx, house.ID, false); uerr != nil {
				return nil, fmt.Errorf("storing image: %w", errors.Join(err, uerr))
			}
		}
	}

	return house, nil
}

// Search returns public listings filtered by district and/or city.
func (s *HouseService) Search(ctx context.Context, district, city string) ([]*models.House, error) {
	return s.houses.Search(ctx, district, city)
}

// Mine returns the owner's listings.
func (s *HouseService) Mine(ctx context.Context, ownerID string) ([]*models.House, error) {
	return s.houses.ListByOwner(ctx, ownerID)
}

// Delete removes a listing owned by ownerID. A foreign listing yields
// common.ErrorForbidden, a missing one common.ErrorNotFound.
func (s *HouseService) Delete(ctx context.Context, ownerID, id string) error {
	house, err := s.houses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if house.OwnerID != ownerID {
		return common.ErrorForbidden
	}

	if err := s.houses.Delete(ctx, id); err != nil {
		return err
	}
	if house.HasImage {
		if err := s.images.Delete(ctx, id); err != nil {
			return fmt.Errorf("deleting image: %w", err)
		}
	}
	return nil
}

// Image returns the stored image for a listing, or common.ErrorNotFound.
func (s *HouseService) Image(ctx context.Context, id string) ([]byte, string, error) {
	return s.images.Load(ctx, id)
}

// Districts lists the districts that currently have listings.
func (s *HouseService) Districts(ctx context.Context) ([]string, error) {
	return s.houses.Districts(ctx)
}

// CitiesByDistrict lists the cities of a district that currently have
// listings.
func (s *HouseService) CitiesByDistrict(ctx context.Context, district string) ([]string, error) {
	return s.houses.CitiesByDistrict(ctx, district)
}
