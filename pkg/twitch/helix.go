package twitch

import (
	"fmt"
	"strings"
	"time"

	apperrors "clip-automator/pkg/errors"
)

type User struct {
	ID          string `json:"id"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type Clip struct {
	ID              string  `json:"id"`
	URL             string  `json:"url"`
	BroadcasterName string  `json:"broadcaster_name"`
	Title           string  `json:"title"`
	ViewCount       int     `json:"view_count"`
	Duration        float64 `json:"duration"`
	CreatedAt       string  `json:"created_at"`
	ThumbnailURL    string  `json:"thumbnail_url"`
}

// DownloadURL derives the direct MP4 asset from the clip's thumbnail.
// The pattern .../xxx-preview-480x272.jpg serves its video at .../xxx.mp4.
// Falls back to the clip page URL when the thumbnail has no preview marker.
func (cl Clip) DownloadURL() string {
	if base, _, found := strings.Cut(cl.ThumbnailURL, "-preview-"); found {
		return base + ".mp4"
	}
	return cl.URL
}

type usersResponse struct {
	Data []User `json:"data"`
}

type clipsResponse struct {
	Data []Clip `json:"data"`
}

// GetUserByLogin resolves a channel login name to its broadcaster id.
func (c *Client) GetUserByLogin(login string) (*User, error) {
	token, err := c.ensureToken()
	if err != nil {
		return nil, err
	}

	var users usersResponse
	resp, err := c.apiRequest(token).
		SetQueryParam("login", login).
		SetResult(&users).
		Get(c.apiURL + "/users")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeTwitchUserMissing, "Twitch user lookup failed", err)
	}
	if resp.IsError() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeTwitchUserMissing,
			"Twitch user lookup failed", fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	if len(users.Data) == 0 {
		return nil, apperrors.WrapWithDetail(apperrors.CodeTwitchUserMissing,
			"Twitch user not found", login, nil)
	}
	return &users.Data[0], nil
}

// GetTopClips returns a broadcaster's most viewed clips of the last days.
func (c *Client) GetTopClips(broadcasterID string, days, first int) ([]Clip, error) {
	token, err := c.ensureToken()
	if err != nil {
		return nil, err
	}
	if first <= 0 {
		first = 10
	}

	req := c.apiRequest(token).
		SetQueryParam("broadcaster_id", broadcasterID).
		SetQueryParam("first", fmt.Sprintf("%d", first))
	if days > 0 {
		startedAt := time.Now().AddDate(0, 0, -days).UTC().Format(time.RFC3339)
		req.SetQueryParam("started_at", startedAt)
	}

	var clips clipsResponse
	resp, err := req.SetResult(&clips).Get(c.apiURL + "/clips")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeUnknown, "Twitch clips request failed", err)
	}
	if resp.IsError() {
		return nil, apperrors.WrapWithDetail(apperrors.CodeUnknown,
			"Twitch clips request failed", fmt.Sprintf("status %d", resp.StatusCode()), nil)
	}
	return clips.Data, nil
}
