package auth

import "strings"

// Role del caller. Solo DOCTOR y MEDSTORE pueden ser autores de un schedule.
type Role string

const (
	RoleDoctor   Role = "DOCTOR"
	RoleMedStore Role = "MEDSTORE"
	RolePatient  Role = "PATIENT"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normaliza el valor del token/header (case-insensitive, acepta "MED_STORE").
func ParseRole(s string) Role {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_", "")
	switch Role(v) {
	case RoleDoctor, RoleMedStore, RolePatient, RoleAdmin:
		return Role(v)
	default:
		return ""
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}
