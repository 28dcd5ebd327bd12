package entity

import (
	"strings"
	"unicode"

	"procure.GO/core/errs"
)

type Supplier struct {
	ID            string `json:"supplier_id"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (s Supplier) Validate() error {
	if strings.TrimSpace(s.CompanyName) == "" {
		return errs.Invalid("supplier %s: company name is required", s.ID)
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return errs.Invalid("supplier %s: invalid email %q", s.ID, s.Email)
	}
	return nil
}

// Address is a free-form supplier address split into parts on a best-effort basis.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ParseAddress splits "street, city, state zip" style addresses. Parts it cannot place are left
// in Street; it never fails.
func ParseAddress(raw string) Address {
	var a Address
	parts := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return a
	}

	last := parts[len(parts)-1]
	if zip, rest := trailingZip(last); zip != "" {
		a.Zip = zip
		if rest != "" {
			parts[len(parts)-1] = rest
		} else {
			parts = parts[:len(parts)-1]
		}
	}

	switch len(parts) {
	case 0:
	case 1:
		a.Street = parts[0]
	case 2:
		a.Street, a.City = parts[0], parts[1]
	default:
		n := len(parts)
		a.Street = strings.Join(parts[:n-2], ", ")
		a.City, a.State = parts[n-2], parts[n-1]
	}
	return a
}

// trailingZip peels a trailing run of digits (and dashes) of length >= 4 off s.
func trailingZip(s string) (zip, rest string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", s
	}
	cand := fields[len(fields)-1]
	digits := 0
	for _, r := range cand {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '-':
		default:
			return "", s
		}
	}
	if digits < 4 {
		return "", s
	}
	return cand, strings.Join(fields[:len(fields)-1], " ")
}
