package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bobby-s-dev/agri-optimizer/internal/models"
	"go.uber.org/zap"
)

var ErrLocationNotFound = errors.New("location not found")

type NominatimClient struct {
	*BaseClient
	baseURL string
}

type NominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Village       string `json:"village"`
		Town          string `json:"town"`
		City          string `json:"city"`
		StateDistrict string `json:"state_district"`
		State         string `json:"state"`
		Postcode      string `json:"postcode"`
		Country       string `json:"country"`
		CountryCode   string `json:"country_code"`
	} `json:"address"`
}

func NewNominatimClient(baseURL string, config ClientConfig, logger *zap.Logger) *NominatimClient {
	return &NominatimClient{
		BaseClient: NewBaseClient("nominatim", config, logger),
		baseURL:    baseURL,
	}
}

// Geocode resolves a village, city or PIN code to coordinates and the
// state it falls in.
func (c *NominatimClient) Geocode(ctx context.Context, place string) (*models.Location, error) {
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "jsonv2")
	q.Set("addressdetails", "1")
	q.Set("limit", "1")

	var results []NominatimPlace
	if err := c.GetJSON(ctx, c.baseURL+"/search?"+q.Encode(), &results); err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", place, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, place)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: bad longitude %q: %w", r.Lon, err)
	}

	return &models.Location{
		Place:       place,
		DisplayName: r.DisplayName,
		State:       r.Address.State,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}
