package herds

import "time"

// Herd es una etiqueta organizativa: agrupa animales por nombre.
// Borrar un rebaño desasocia a sus animales, nunca los borra.
type Herd struct {
	ID string

	Name        string
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}
