package model

// Coords mirrors a row of the `coords` table.  Every pass references
// exactly one coordinate row; editing a pass may update the row in
// place rather than allocating a new one.
type Coords struct {
	ID        int64   // coords.id
	Latitude  float64 // coords.latitude, degrees
	Longitude float64 // coords.longitude, degrees
	Height    int     // coords.height, metres
}
