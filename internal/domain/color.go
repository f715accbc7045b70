package domain

import "strings"

// Color bezeichnet den aktuell aktiven Deployment-Slot.
type Color struct {
	ID string `json:"id"`
}

var (
	Blue  = Color{ID: "blue"}
	Green = Color{ID: "green"}
)

// ResolveColor bildet einen konfigurierten Wert auf eine Farbe ab.
// Nur "blue" (ohne Beachtung der Groß-/Kleinschreibung) ergibt Blue,
// alles andere inklusive leerer Werte fällt auf Green zurück.
func ResolveColor(value string) Color {
	if strings.EqualFold(strings.TrimSpace(value), Blue.ID) {
		return Blue
	}
	return Green
}

// IsKnownColor meldet, ob value einer der beiden Farben entspricht.
func IsKnownColor(value string) bool {
	v := strings.TrimSpace(value)
	return strings.EqualFold(v, Blue.ID) || strings.EqualFold(v, Green.ID)
}
