// Package ipapi implements geo.Locator against an ip-api.com style endpoint.
package ipapi

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"github.com/at-ishikawa/jugaadu/internal/geo"
)

type Client struct {
	httpClient *resty.Client
}

func NewClient(endpoint string) *Client {
	client := resty.New()
	client.SetBaseURL(endpoint)

	return &Client{
		httpClient: client,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

// Locate implements the geo.Locator interface. The endpoint geolocates the
// caller's public IP, so no request parameters are needed. A "fail" status
// from the service is returned as a nil location, not an error.
func (client *Client) Locate(ctx context.Context) (*geo.Location, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetResult(&lookupResponse{}).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*lookupResponse)
	if responseBody == nil {
		return nil, fmt.Errorf("empty response body: %s", response.String())
	}
	if responseBody.Status != "success" {
		return nil, nil
	}

	return &geo.Location{
		Lat:     responseBody.Lat,
		Lng:     responseBody.Lon,
		City:    responseBody.City,
		Country: responseBody.Country,
	}, nil
}
