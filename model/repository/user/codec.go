package user

import "procure.GO/model/entity"

// codec lays a user out as: id, name, username, password hash, role
type codec struct{}

func (codec) Key(u entity.User) string { return u.ID }

func (codec) Fields() int { return 5 }

func (codec) Encode(u entity.User) ([]string, error) {
	return []string{u.ID, u.Name, u.Username, u.PasswordHash, string(u.Role)}, nil
}

func (codec) Decode(f []string) (entity.User, error) {
	role, err := entity.ParseRole(f[4])
	if err != nil {
		return entity.User{}, err
	}
	return entity.User{ID: f[0], Name: f[1], Username: f[2], PasswordHash: f[3], Role: role}, nil
}
