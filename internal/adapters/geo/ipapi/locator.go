package ipapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"pet-rescue-registry/internal/platform/httpclient"
	"pet-rescue-registry/internal/ports/geo"
)

// ip-api.com: servicio gratuito, sin API key, solo http en el tier free.
const (
	defaultBaseURL = "http://ip-api.com"
	defaultTimeout = 5 * time.Second
)

var (
	ErrEmptyIP = errors.New("ip is empty")
	ErrLookup  = errors.New("geolocation lookup failed")
)

type Config struct {
	BaseURL string        // override para tests
	Timeout time.Duration // default 5s
}

// Locator implementa geo.Locator consultando ip-api.com.
type Locator struct {
	http *httpclient.Client
}

func NewLocator(cfg Config) (*Locator, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Locator{http: hc}, nil
}

type lookupResponse struct {
	Status     string  `json:"status"` // "success" | "fail"
	Message    string  `json:"message"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
}

func (l *Locator) Locate(ctx context.Context, ip string) (geo.Location, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return geo.Location{}, ErrEmptyIP
	}

	var resp lookupResponse
	err := l.http.DoJSON(ctx, "GET", "/json/"+url.PathEscape(ip), nil, nil, &resp)
	if err != nil {
		return geo.Location{}, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	if resp.Status != "success" {
		return geo.Location{}, fmt.Errorf("%w: %s", ErrLookup, resp.Message)
	}

	return geo.Location{
		Lat:     resp.Lat,
		Lng:     resp.Lon,
		City:    resp.City,
		Region:  resp.RegionName,
		Country: resp.Country,
	}, nil
}
