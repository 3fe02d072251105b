package nasa

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Represents a response from the Mars rover photos endpoint.
type marsPhotosResp struct {
	Photos []struct {
		ID     int64 `json:"id"`
		Sol    int   `json:"sol"`
		Camera struct {
			FullName string `json:"full_name"`
		} `json:"camera"`
		ImgSrc    string `json:"img_src"`
		EarthDate string `json:"earth_date"`
	} `json:"photos"`
}

// RoverPhotos fetches every photo the named rover took on the given
// Earth date. Entries map one-to-one onto MarsPhoto, source order kept.
func (c *Client) RoverPhotos(ctx context.Context, rover, earthDate string) ([]skygaze.MarsPhoto, error) {
	query := url.Values{}
	query.Set("earth_date", earthDate)
	query.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/mars-photos/api/v1/rovers/%s/photos?%s",
		c.apiBase, url.PathEscape(rover), query.Encode())

	var resp marsPhotosResp
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("error fetching rover photos: %w", err)
	}

	photos := make([]skygaze.MarsPhoto, 0, len(resp.Photos))
	for _, p := range resp.Photos {
		photos = append(photos, skygaze.MarsPhoto{
			ID:         strconv.FormatInt(p.ID, 10),
			ImgSrc:     p.ImgSrc,
			Sol:        p.Sol,
			CameraName: p.Camera.FullName,
			EarthDate:  p.EarthDate,
		})
	}

	return photos, nil
}
