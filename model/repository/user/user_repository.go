package user

import (
	"path/filepath"
	"strings"

	"procure.GO/core/errs"
	"procure.GO/core/flatfile"
	"procure.GO/core/sequence"
	"procure.GO/model/entity"
	"procure.GO/model/repository"
)

const (
	FileName = "users.txt"
	Prefix   = "U"
)

type UserRepository struct {
	store *flatfile.Store[entity.User]
}

func NewUserRepository(root string, opts ...repository.Option) *UserRepository {
	o := repository.Apply(opts)
	return &UserRepository{
		store: flatfile.New[entity.User](filepath.Join(root, FileName), "user", codec{}, o.StoreOptions()...),
	}
}

// Create stores a new user. Usernames are unique, compared case-insensitively.
func (r *UserRepository) Create(u *entity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	created, err := r.store.AppendNew(func(existing []entity.User) (entity.User, error) {
		for _, e := range existing {
			if strings.EqualFold(e.Username, u.Username) {
				return entity.User{}, errs.DuplicateKey("username", u.Username)
			}
		}
		rec := *u
		if rec.ID == "" {
			rec.ID = sequence.Next(r.store.KeysOf(existing), Prefix, "")
		}
		return rec, nil
	})
	if err != nil {
		return err
	}
	*u = created
	return nil
}

// Update replaces a user. Renaming to a username held by another user fails with DuplicateKey.
func (r *UserRepository) Update(u *entity.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if other, err := r.GetByUsername(u.Username); err == nil && other.ID != u.ID {
		return errs.DuplicateKey("username", u.Username)
	}
	_, err := r.store.Update(u.ID, func(entity.User) (entity.User, error) {
		return *u, nil
	})
	return err
}

func (r *UserRepository) Delete(id string) error {
	return r.store.Delete(id)
}

func (r *UserRepository) Get(id string) (*entity.User, error) {
	u, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	users, err := r.store.Filter(func(u entity.User) bool { return strings.EqualFold(u.Username, username) })
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.NotFound("user", username)
	}
	return &users[0], nil
}

func (r *UserRepository) List() ([]entity.User, error) {
	return r.store.List()
}

func (r *UserRepository) ByRole(role entity.Role) ([]entity.User, error) {
	return r.store.Filter(func(u entity.User) bool { return u.Role == role })
}

func (r *UserRepository) NextID() (string, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return "", err
	}
	return sequence.Next(keys, Prefix, ""), nil
}
