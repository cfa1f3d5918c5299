package services

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rentafind/rentafind/internal/common"
	"github.com/rentafind/rentafind/internal/server/models"
)

// fakeUserRepo is an in-memory users.Repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := *user
	f.users[u.ID] = &u
	out := u
	return &out, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdatePhoneNumber(_ context.Context, id, phoneNumber string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.PhoneNumber = phoneNumber
	out := *u
	return &out, nil
}

// fakeHouseRepo is an in-memory houses.Repository.
type fakeHouseRepo struct {
	mu     sync.Mutex
	houses map[string]*models.House
}

func newFakeHouseRepo() *fakeHouseRepo {
	return &fakeHouseRepo{houses: map[string]*models.House{}}
}

func (f *fakeHouseRepo) Create(_ context.Context, house *models.House) (*models.House, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := *house
	f.houses[h.ID] = &h
	out := h
	return &out, nil
}

func (f *fakeHouseRepo) GetByID(_ context.Context, id string) (*models.House, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.houses[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *h
	return &out, nil
}

func (f *fakeHouseRepo) Search(_ context.Context, district, city string) ([]*models.House, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.House
	for _, h := range f.houses {
		if district != "" && h.District != district {
			continue
		}
		if city != "" && h.City != city {
			continue
		}
		c := *h
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHouseRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.House, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.House
	for _, h := range f.houses {
		if h.OwnerID == ownerID {
			c := *h
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHouseRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.houses[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.houses, id)
	return nil
}

func (f *fakeHouseRepo) SetHasImage(_ context.Context, id string, hasImage bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.houses[id]
	if !ok {
		return common.ErrorNotFound
	}
	h.HasImage = hasImage
	return nil
}

func (f *fakeHouseRepo) Districts(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, h := range f.houses {
		if !seen[h.District] {
			seen[h.District] = true
			out = append(out, h.District)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeHouseRepo) CitiesByDistrict(_ context.Context, district string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, h := range f.houses {
		if h.District == district && !seen[h.City] {
			seen[h.City] = true
			out = append(out, h.City)
		}
	}
	sort.Strings(out)
	return out, nil
}

// fakeImageStore is an in-memory storage.ImageStore.
type fakeImageStore struct {
	mu     sync.Mutex
	images map[string][]byte
	types  map[string]string

	saveErr error
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{images: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeImageStore) Save(_ context.Context, houseID string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.images[houseID] = append([]byte(nil), data...)
	f.types[houseID] = contentType
	return nil
}

func (f *fakeImageStore) Load(_ context.Context, houseID string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.images[houseID]
	if !ok {
		return nil, "", common.ErrorNotFound
	}
	return append([]byte(nil), data...), f.types[houseID], nil
}

func (f *fakeImageStore) Delete(_ context.Context, houseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.images, houseID)
	delete(f.types, houseID)
	return nil
}

var errBoom = errors.New("boom")
