package models

import "strings"

var UserColumns = []string{"id", "nombre", "email", "password_hash", "rol"}

const (
	RoleDentist   = "dentist"
	RoleAssistant = "assistant"
)

// User is a clinic operator account.
type User struct {
	ID           string `json:"id"`
	Nombre       string `json:"nombre"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Hide from JSON responses
	Rol          string `json:"rol"`
}

func (u User) ToRecord() Record {
	return Record{
		"id":            u.ID,
		"nombre":        u.Nombre,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
		"rol":           u.Rol,
	}
}

func UserFromRecord(r Record) (User, error) {
	id, err := required("id", r["id"])
	if err != nil {
		return User{}, err
	}
	email, err := required("email", r["email"])
	if err != nil {
		return User{}, err
	}
	return User{
		ID:           id,
		Nombre:       r["nombre"],
		Email:        strings.ToLower(email),
		PasswordHash: r["password_hash"],
		Rol:          r["rol"],
	}, nil
}
