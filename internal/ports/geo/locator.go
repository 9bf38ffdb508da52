package geo

import "context"

// Location es la resolución aproximada de una IP.
type Location struct {
	Lat     float64
	Lng     float64
	City    string
	Region  string
	Country string
}

// Locator resuelve una IP a ubicación. Siempre se usa best-effort.
type Locator interface {
	Locate(ctx context.Context, ip string) (Location, error)
}
