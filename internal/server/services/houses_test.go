package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentafind/rentafind/internal/common"
)

func TestHouseService_AddWithImage(t *testing.T) {
	repo := newFakeHouseRepo()
	images := newFakeImageStore()
	s := NewHouseService(repo, images)
	ctx := context.Background()

	house, err := s.Add(ctx, "owner-1", "2BHK", "12345", "Hyderabad", "Secunderabad", []byte{0xff, 0xd8}, "image/jpeg")
	require.NoError(t, err)
	assert.True(t, house.HasImage)

	data, contentType, err := s.Image(ctx, house.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestHouseService_AddWithoutImage(t *testing.T) {
	s := NewHouseService(newFakeHouseRepo(), newFakeImageStore())
	ctx := context.Background()

	house, err := s.Add(ctx, "owner-1", "1BHK", "12345", "Hyderabad", "Hyderabad", nil, "")
	require.NoError(t, err)
	assert.False(t, house.HasImage)

	_, _, err = s.Image(ctx, house.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHouseService_AddDegradesWhenImageStoreFails(t *testing.T) {
	repo := newFakeHouseRepo()
	images := newFakeImageStore()
	images.saveErr = errBoom
	s := NewHouseService(repo, images)
	ctx := context.Background()

	house, err := s.Add(ctx, "owner-1", "2BHK", "12345", "Hyderabad", "Hyderabad", []byte{1, 2, 3}, "image/png")
	require.NoError(t, err, "the listing itself must survive an image store outage")
	assert.False(t, house.HasImage)

	stored, err := repo.GetByID(ctx, house.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasImage)
}

func TestHouseService_SearchFilters(t *testing.T) {
	repo := newFakeHouseRepo()
	s := NewHouseService(repo, newFakeImageStore())
	ctx := context.Background()

	_, err := s.Add(ctx, "o1", "2BHK", "1", "Hyderabad", "Hyderabad", nil, "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "o1", "1BHK", "2", "Hyderabad", "Secunderabad", nil, "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "o2", "3BHK", "3", "Warangal", "Kazipet", nil, "")
	require.NoError(t, err)

	all, err := s.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	hyd, err := s.Search(ctx, "Hyderabad", "")
	require.NoError(t, err)
	assert.Len(t, hyd, 2)

	sec, err := s.Search(ctx, "Hyderabad", "Secunderabad")
	require.NoError(t, err)
	require.Len(t, sec, 1)
	assert.Equal(t, "1BHK", sec[0].Type)
}

func TestHouseService_MineListsOnlyOwn(t *testing.T) {
	s := NewHouseService(newFakeHouseRepo(), newFakeImageStore())
	ctx := context.Background()

	_, err := s.Add(ctx, "o1", "2BHK", "1", "Hyderabad", "Hyderabad", nil, "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "o2", "1BHK", "2", "Hyderabad", "Hyderabad", nil, "")
	require.NoError(t, err)

	mine, err := s.Mine(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "o1", mine[0].OwnerID)
}

func TestHouseService_Delete(t *testing.T) {
	repo := newFakeHouseRepo()
	images := newFakeImageStore()
	s := NewHouseService(repo, images)
	ctx := context.Background()

	house, err := s.Add(ctx, "o1", "2BHK", "1", "Hyderabad", "Hyderabad", []byte{1}, "image/png")
	require.NoError(t, err)

	// A stranger cannot delete it.
	err = s.Delete(ctx, "o2", house.ID)
	assert.ErrorIs(t, err, common.ErrorForbidden)

	// The owner can, and the image goes with it.
	require.NoError(t, s.Delete(ctx, "o1", house.ID))
	_, err = repo.GetByID(ctx, house.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, _, err = images.Load(ctx, house.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// Deleting again reports not found.
	err = s.Delete(ctx, "o1", house.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestHouseService_DistrictsAndCities(t *testing.T) {
	s := NewHouseService(newFakeHouseRepo(), newFakeImageStore())
	ctx := context.Background()

	_, err := s.Add(ctx, "o1", "2BHK", "1", "Hyderabad", "Hyderabad", nil, "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "o1", "2BHK", "2", "Hyderabad", "Secunderabad", nil, "")
	require.NoError(t, err)
	_, err = s.Add(ctx, "o2", "3BHK", "3", "Warangal", "Kazipet", nil, "")
	require.NoError(t, err)

	districts, err := s.Districts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyderabad", "Warangal"}, districts)

	cities, err := s.CitiesByDistrict(ctx, "Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, []string{"Hyderabad", "Secunderabad"}, cities)
}
