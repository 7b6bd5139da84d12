package schedules

import "strings"

// AuthorType es el discriminante del autor de un schedule.
// @Enum DOCTOR, MEDSTORE
type AuthorType string

const (
	AuthorTypeDoctor   AuthorType = "DOCTOR"
	AuthorTypeMedStore AuthorType = "MEDSTORE"
)

func (t AuthorType) Valid() bool {
	switch t {
	case AuthorTypeDoctor, AuthorTypeMedStore:
		return true
	default:
		return false
	}
}

// ParseAuthorType normaliza el valor recibido (case-insensitive, acepta "MED_STORE").
func ParseAuthorType(s string) (AuthorType, bool) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_", "")
	t := AuthorType(v)
	return t, t.Valid()
}

// Author identifica a quien crea el schedule: un doctor o una med-store, nunca ambos.
type Author struct {
	Type AuthorType
	ID   string
}

func (a Author) Valid() bool {
	return a.Type.Valid() && strings.TrimSpace(a.ID) != ""
}

func (a Author) String() string {
	return string(a.Type) + ":" + a.ID
}

type EventType string

const (
	EventScheduleCreated EventType = "schedule.created"
	EventScheduleUpdated EventType = "schedule.updated"
	EventScheduleDeleted EventType = "schedule.deleted"
)
