package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"

	"pet-rescue-registry/internal/domain/rescue"
)

type reportsRepo struct {
	client *fs.Client
}

// NewReportsRepo guarda los reportes como subcolección de cada mascota:
// pets/{petId}/lostReports/{reportId}.
func NewReportsRepo(client *fs.Client) rescue.ReportsRepository {
	return &reportsRepo{client: client}
}

type locationDoc struct {
	Lat     float64 `firestore:"lat"`
	Lng     float64 `firestore:"lng"`
	City    string  `firestore:"city"`
	Region  string  `firestore:"region"`
	Country string  `firestore:"country"`
}

type lostReportDoc struct {
	By        string       `firestore:"by"`
	At        time.Time    `firestore:"at"`
	IP        string       `firestore:"ip"`
	UserAgent string       `firestore:"userAgent"`
	Device    string       `firestore:"device"`
	Location  *locationDoc `firestore:"location"`
}

func (r *reportsRepo) reports(petID string) *fs.CollectionRef {
	return r.client.Collection(colPets).Doc(petID).Collection(subLostReports)
}

func (r *reportsRepo) Create(ctx context.Context, rep rescue.LostReport) error {
	doc := lostReportDoc{
		By:        rep.By,
		At:        rep.At,
		IP:        rep.IP,
		UserAgent: rep.UserAgent,
		Device:    rep.Device,
	}
	if rep.Location != nil {
		doc.Location = &locationDoc{
			Lat:     rep.Location.Lat,
			Lng:     rep.Location.Lng,
			City:    rep.Location.City,
			Region:  rep.Location.Region,
			Country: rep.Location.Country,
		}
	}
	_, err := r.reports(rep.PetID).Doc(rep.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("create lost report: %w", err)
	}
	return nil
}

func (r *reportsRepo) AttachLocation(ctx context.Context, petID, reportID string, loc rescue.Location) error {
	_, err := r.reports(petID).Doc(reportID).Set(ctx, map[string]any{
		"location": locationDoc{
			Lat:     loc.Lat,
			Lng:     loc.Lng,
			City:    loc.City,
			Region:  loc.Region,
			Country: loc.Country,
		},
	}, fs.MergeAll)
	if err != nil {
		return fmt.Errorf("attach location: %w", err)
	}
	return nil
}

type alertsRepo struct {
	client *fs.Client
}

func NewAlertsRepo(client *fs.Client) rescue.AlertsRepository {
	return &alertsRepo{client: client}
}

type lostAlertDoc struct {
	Type      string    `firestore:"type"`
	TargetID  string    `firestore:"targetId"`
	Microchip string    `firestore:"microchip"`
	PetID     string    `firestore:"petId"`
	At        time.Time `firestore:"at"`
}

func (r *alertsRepo) Create(ctx context.Context, a rescue.LostAlert) error {
	doc := lostAlertDoc{
		Type:      string(a.Type),
		TargetID:  a.TargetID,
		Microchip: a.Microchip,
		PetID:     a.PetID,
		At:        a.At,
	}
	_, err := r.client.Collection(colLostAlerts).Doc(a.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("create lost alert: %w", err)
	}
	return nil
}

type clicksRepo struct {
	client *fs.Client
}

func NewClicksRepo(client *fs.Client) rescue.ClicksRepository {
	return &clicksRepo{client: client}
}

type waClickDoc struct {
	UserID    string    `firestore:"userId"`
	Microchip string    `firestore:"microchip"`
	Origin    string    `firestore:"origin"`
	UserAgent string    `firestore:"userAgent"`
	At        time.Time `firestore:"at"`
}

func (r *clicksRepo) Create(ctx context.Context, c rescue.WaClick) error {
	doc := waClickDoc{
		UserID:    c.UserID,
		Microchip: c.Microchip,
		Origin:    c.Origin,
		UserAgent: c.UserAgent,
		At:        c.At,
	}
	_, err := r.client.Collection(colWaClicks).Doc(c.ID).Create(ctx, doc)
	if err != nil {
		return fmt.Errorf("create wa click: %w", err)
	}
	return nil
}
