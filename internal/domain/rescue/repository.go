package rescue

import "context"

type ReportsRepository interface {
	Create(ctx context.Context, rep LostReport) error

	// AttachLocation agrega la ubicación resuelta a un reporte ya creado.
	AttachLocation(ctx context.Context, petID, reportID string, loc Location) error
}

type AlertsRepository interface {
	Create(ctx context.Context, a LostAlert) error
}

type ClicksRepository interface {
	Create(ctx context.Context, c WaClick) error
}
