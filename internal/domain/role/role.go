// Package role resuelve el rol de un usuario una sola vez, en el borde con el backend,
// y traduce entre el vocabulario del backend (ADMIN, JEFE_AREA, SUPERVISOR, BODEGUERO)
// y el del panel (ADMIN, JEFE, SUPERVISOR).
package role

import (
	"bytes"
	"encoding/json"

	"github.com/jhoicas/Logistica-bff/pkg/textnorm"
)

// Role rol del panel. El valor cero es Unknown.
type Role int

const (
	Unknown Role = iota
	Admin
	Jefe
	Supervisor
)

// Nombres en el backend.
const (
	BackendAdmin      = "ADMIN"
	BackendJefeArea   = "JEFE_AREA"
	BackendSupervisor = "SUPERVISOR"
	BackendBodeguero  = "BODEGUERO"
)

// String devuelve el token del panel.
func (r Role) String() string {
	switch r {
	case Admin:
		return "ADMIN"
	case Jefe:
		return "JEFE"
	case Supervisor:
		return "SUPERVISOR"
	default:
		return "UNKNOWN"
	}
}

// Valid es false solo para Unknown.
func (r Role) Valid() bool { return r != Unknown }

// MarshalJSON serializa con el token del panel.
func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON acepta cualquier forma que entienda Resolve.
func (r *Role) UnmarshalJSON(data []byte) error {
	*r = Resolve(data, "")
	return nil
}

// FromBackend traduce un nombre del backend (o del panel) a Role.
// BODEGUERO y SUPERVISOR colapsan en Supervisor.
func FromBackend(name string) Role {
	switch textnorm.Upper(name) {
	case BackendAdmin:
		return Admin
	case BackendJefeArea, "JEFE":
		return Jefe
	case BackendSupervisor, BackendBodeguero:
		return Supervisor
	default:
		return Unknown
	}
}

// ToBackend traduce Role al nombre que espera el backend. Jefe vuelve siempre a JEFE_AREA.
func ToBackend(r Role) string {
	switch r {
	case Admin:
		return BackendAdmin
	case Jefe:
		return BackendJefeArea
	case Supervisor:
		return BackendSupervisor
	default:
		return ""
	}
}

// Parse acepta un token del panel o del backend.
func Parse(s string) Role { return FromBackend(s) }

// Resolve normaliza el campo role de un DTO de usuario: puede venir como string,
// como objeto {"name": ...} o no venir; en ese caso se usa roleID.
func Resolve(raw json.RawMessage, roleID string) Role {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return FromBackend(s)
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil && obj.Name != "" {
			return FromBackend(obj.Name)
		}
	}
	return FromBackend(roleID)
}

// In informa si r es alguno de los roles dados.
func (r Role) In(roles ...Role) bool {
	for _, o := range roles {
		if r == o {
			return true
		}
	}
	return false
}
