package animals

import "time"

// Sex define el sexo del animal.
// El motor de cruza solo trabaja con Male/Female; no existe "unknown" acá.
// @Enum Male, Female
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// Animal representa el registro canónico de un animal del criadero.
//
// SireID y DamID son referencias débiles: pueden apuntar a un animal ya
// borrado (dangling) o formar ciclos si los datos vienen mal cargados.
// Nunca se siguen recursivamente sin guarda de visitados.
type Animal struct {
	ID string

	Name    string
	Species string
	Sex     Sex

	HornSize    *float64 // pulgadas; nil = sin medición
	HealthNotes string

	SireID string // padre registrado; "" = desconocido
	DamID  string // madre registrada; "" = desconocido

	HerdID string // "" = sin rebaño asignado

	CreatedAt time.Time
	UpdatedAt time.Time
}
