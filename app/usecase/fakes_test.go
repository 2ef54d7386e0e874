package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"catalog-service/app/domain"
)

// In-memory fakes for the repository and crypto ports. Error fields, when
// set, are returned by every call to simulate an unavailable backend.

type fakeUserRepo struct {
	byID map[uuid.UUID]*domain.User
	err  error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byID: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.byID {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByRole(ctx context.Context, role domain.Role) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	for _, u := range r.byID {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Search(ctx context.Context, filter domain.UserFilter, page domain.Page) ([]*domain.User, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var users []*domain.User
	for _, u := range r.byID {
		users = append(users, u)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeProductRepo struct {
	byID   map[int64]*domain.Product
	nextID int64
	err    error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[int64]*domain.Product), nextID: 1}
}

func (r *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if r.err != nil {
		return r.err
	}
	product.ID = r.nextID
	r.nextID++
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	product, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *fakeProductRepo) Search(ctx context.Context, filter domain.ProductFilter, page domain.Page) ([]*domain.Product, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	var products []*domain.Product
	for _, p := range r.byID {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		products = append(products, p)
	}
	return products, int64(len(products)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.byID[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.byID, id)
	return nil
}

// fakeHasher is a transparent stand-in for bcrypt; tests do not need the
// cost of real key stretching.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrAuthenticationFailed
	}
	return nil
}

// errBlacklist fails every call, standing in for an unreachable store.
type errBlacklist struct {
	err error
}

func (b errBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	return b.err
}

func (b errBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	return false, b.err
}

func (b errBlacklist) PruneExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, b.err
}
