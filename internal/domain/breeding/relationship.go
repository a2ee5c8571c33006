package breeding

import "livestock-breeding/internal/domain/animals"

// Tipos de parentesco detectables. El chequeo es deliberadamente de
// una sola generación: padre/madre directo y medios hermanos por
// padre o madre compartidos. No recorre abuelos ni pedigrí completo.
const (
	RelationParentChild = "parent-child"
	RelationSharedSire  = "half-siblings (shared sire)"
	RelationSharedDam   = "half-siblings (shared dam)"
)

// Relationship devuelve el parentesco directo entre dos animales.
// Pura y simétrica: Relationship(a,b) == Relationship(b,a).
// Las referencias de linaje pueden colgar (padre borrado); acá solo
// se comparan identificadores, nunca se resuelven registros.
func Relationship(a, b animals.Animal) (string, bool) {
	if isParentOf(a, b) || isParentOf(b, a) {
		return RelationParentChild, true
	}
	if a.SireID != "" && a.SireID == b.SireID {
		return RelationSharedSire, true
	}
	if a.DamID != "" && a.DamID == b.DamID {
		return RelationSharedDam, true
	}
	return "", false
}

// AreRelated indica si dos animales quedan descalificados para cruza.
// El caller es responsable de no comparar un animal contra sí mismo.
func AreRelated(a, b animals.Animal) bool {
	_, related := Relationship(a, b)
	return related
}

func isParentOf(parent, child animals.Animal) bool {
	if parent.ID == "" {
		return false
	}
	return child.SireID == parent.ID || child.DamID == parent.ID
}

// RelatedPairsIn escanea todas las parejas de un rebaño y devuelve las
// conflictivas con su tipo de parentesco. O(n²), aceptable para el
// tamaño de rebaño que maneja la aplicación.
func RelatedPairsIn(herd []animals.Animal) []RelatedPair {
	var out []RelatedPair
	for i := 0; i < len(herd); i++ {
		for j := i + 1; j < len(herd); j++ {
			if kind, related := Relationship(herd[i], herd[j]); related {
				out = append(out, RelatedPair{
					Animal1:      herd[i].Name,
					Animal2:      herd[j].Name,
					Relationship: kind,
				})
			}
		}
	}
	return out
}
