package nasa

import (
	"context"
	"fmt"
	"net/url"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Represents a response from the astronomy-picture-of-the-day endpoint.
type apodResp struct {
	Title       string  `json:"title"`
	Explanation string  `json:"explanation"`
	URL         string  `json:"url"`
	HDURL       *string `json:"hdurl"`
	MediaType   string  `json:"media_type"`
	Date        *string `json:"date"`
	Copyright   *string `json:"copyright"`
}

// PictureOfTheDay fetches the astronomy picture for the given date, or
// today's picture when date is empty. The endpoint returns a single
// object; optional fields absent upstream stay nil.
func (c *Client) PictureOfTheDay(ctx context.Context, date string) (skygaze.ApodEntry, error) {
	query := url.Values{}
	query.Set("api_key", c.apiKey)
	if date != "" {
		query.Set("date", date)
	}
	endpoint := fmt.Sprintf("%s/planetary/apod?%s", c.apiBase, query.Encode())

	var resp apodResp
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return skygaze.ApodEntry{}, fmt.Errorf("error fetching picture of the day: %w", err)
	}

	return skygaze.ApodEntry{
		Title:       sanitize(resp.Title),
		Explanation: sanitize(resp.Explanation),
		URL:         resp.URL,
		HDURL:       resp.HDURL,
		MediaType:   resp.MediaType,
		Date:        resp.Date,
		Copyright:   resp.Copyright,
	}, nil
}
