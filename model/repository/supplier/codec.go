package supplier

import "procure.GO/model/entity"

// codec lays a supplier out as: id, company, contact person, phone, email, address
type codec struct{}

func (codec) Key(s entity.Supplier) string { return s.ID }

func (codec) Fields() int { return 6 }

func (codec) Encode(s entity.Supplier) ([]string, error) {
	return []string{s.ID, s.CompanyName, s.ContactPerson, s.Phone, s.Email, s.Address}, nil
}

func (codec) Decode(f []string) (entity.Supplier, error) {
	return entity.Supplier{
		ID:            f[0],
		CompanyName:   f[1],
		ContactPerson: f[2],
		Phone:         f[3],
		Email:         f[4],
		Address:       f[5],
	}, nil
}
