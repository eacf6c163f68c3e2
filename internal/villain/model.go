// Package villain provides the villain domain model and data access.
package villain

import (
	"encoding/json"
	"strings"
	"time"
)

// Villain is a catalog entry.
type Villain struct {
	ID         string
	Name       string
	Franchise  string
	Powers     []string
	DefeatedBy string
	Image      string
	CreatedAt  time.Time
}

// wireVillain is the record shape used by the REST API. The defeated-by
// field has appeared as both camelCase and snake_case; powers as either a
// list or a single comma-separated string.
type wireVillain struct {
	ID                 string          `json:"_id,omitempty"`
	Nombre             string          `json:"nombre"`
	Franquicia         string          `json:"franquicia"`
	Poderes            json.RawMessage `json:"poderes,omitempty"`
	DerrotadoPor       string          `json:"derrotadoPor,omitempty"`
	DerrotadoPorLegacy string          `json:"derrotado_por,omitempty"`
	Imagen             string          `json:"imagen,omitempty"`
}

// UnmarshalJSON normalizes the wire record into Villain.
func (v *Villain) UnmarshalJSON(data []byte) error {
	var w wireVillain
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	defeatedBy := w.DerrotadoPor
	if defeatedBy == "" {
		defeatedBy = w.DerrotadoPorLegacy
	}

	*v = Villain{
		ID:         w.ID,
		Name:       w.Nombre,
		Franchise:  w.Franquicia,
		Powers:     decodePowers(w.Poderes),
		DefeatedBy: defeatedBy,
		Image:      w.Imagen,
	}
	return nil
}

// MarshalJSON writes both spellings of the defeated-by field so older
// backends accept the record.
func (v Villain) MarshalJSON() ([]byte, error) {
	powers := v.Powers
	if powers == nil {
		powers = []string{}
	}
	raw, err := json.Marshal(powers)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireVillain{
		ID:                 v.ID,
		Nombre:             v.Name,
		Franquicia:         v.Franchise,
		Poderes:            raw,
		DerrotadoPor:       v.DefeatedBy,
		DerrotadoPorLegacy: v.DefeatedBy,
		Imagen:             v.Image,
	})
}

// decodePowers accepts a JSON array of strings or a comma-separated string.
func decodePowers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return cleanPowers(list)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParsePowers(s)
	}

	return nil
}

// ParsePowers splits a comma-separated power list.
func ParsePowers(s string) []string {
	return cleanPowers(strings.Split(s, ","))
}

func cleanPowers(in []string) []string {
	var out []string
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Display fallbacks for the detail view.
const (
	UnknownFranchise = "Desconocida"
	NoPowers         = "No se han registrado poderes para este villano."
	NotDefeated      = "Aún no ha sido derrotado"
)

// FranchiseLabel returns the franchise or its fallback.
func (v *Villain) FranchiseLabel() string {
	if v.Franchise == "" {
		return UnknownFranchise
	}
	return v.Franchise
}

// PowersLabel joins powers for display.
func (v *Villain) PowersLabel() string {
	if len(v.Powers) == 0 {
		return NoPowers
	}
	return strings.Join(v.Powers, ", ")
}

// DefeatedByLabel returns who defeated the villain, or its fallback.
func (v *Villain) DefeatedByLabel() string {
	if v.DefeatedBy == "" {
		return NotDefeated
	}
	return v.DefeatedBy
}
