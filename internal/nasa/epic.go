package nasa

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Represents one item from the EPIC enhanced archive listing.
type epicItem struct {
	Image               string `json:"image"`
	CentroidCoordinates struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"centroid_coordinates"`
	Identifier string `json:"identifier"`
}

// Enhanced fetches the enhanced Earth imagery captured on the given
// date (YYYY-MM-DD) and normalizes each item. The archive URL for an
// image is built from the query date, not from anything in the item:
// the upstream listing carries its own dates but the downloadable
// assets are filed under the date that was asked for.
func (c *Client) Enhanced(ctx context.Context, date string) ([]skygaze.EpicRecord, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("error parsing query date: %s", err)
	}

	var items []epicItem
	endpoint := fmt.Sprintf("%s/api/enhanced/date/%s", c.epicBase, url.PathEscape(date))
	if err := c.getJSON(ctx, endpoint, &items); err != nil {
		return nil, fmt.Errorf("error fetching epic listing: %w", err)
	}

	records := make([]skygaze.EpicRecord, 0, len(items))
	for _, item := range items {
		records = append(records, skygaze.EpicRecord{
			ImageURL: fmt.Sprintf("%s/archive/enhanced/%04d/%02d/%02d/png/%s.png",
				c.epicBase, day.Year(), int(day.Month()), day.Day(), item.Image),
			Latitude:   item.CentroidCoordinates.Lat,
			Longitude:  item.CentroidCoordinates.Lon,
			Identifier: item.Identifier,
		})
	}

	return records, nil
}
