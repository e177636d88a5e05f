package profile

import (
	"net/url"
	"strings"

	"github.com/agenticlearn/educator-portal/internal/domain/entity"
)

// Draft is the form-bound copy of the editable profile fields.
type Draft struct {
	Name       string
	Email      string
	Role       string
	Department string
	Phone      string
	Bio        string
}

// NewDraft copies the editable fields of p. Missing fields are empty.
func NewDraft(p entity.Profile) *Draft {
	return &Draft{
		Name:       p.Text(entity.FieldName, ""),
		Email:      p.Text(entity.FieldEmail, ""),
		Role:       p.Text(entity.FieldRole, ""),
		Department: p.Text(entity.FieldDepartment, ""),
		Phone:      p.Text(entity.FieldPhone, ""),
		Bio:        p.Text(entity.FieldBio, ""),
	}
}

// DraftFromValues reads a submitted profile form.
func DraftFromValues(v url.Values) Draft {
	get := func(k string) string { return strings.TrimSpace(v.Get(k)) }
	return Draft{
		Name:       get(entity.FieldName),
		Email:      get(entity.FieldEmail),
		Role:       get(entity.FieldRole),
		Department: get(entity.FieldDepartment),
		Phone:      get(entity.FieldPhone),
		Bio:        get(entity.FieldBio),
	}
}

// Fields returns the draft as a partial profile record.
func (d Draft) Fields() entity.Profile {
	return entity.Profile{
		entity.FieldName:       d.Name,
		entity.FieldEmail:      d.Email,
		entity.FieldRole:       d.Role,
		entity.FieldDepartment: d.Department,
		entity.FieldPhone:      d.Phone,
		entity.FieldBio:        d.Bio,
	}
}
