package baas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Upload writes r to the configured bucket at objectPath. Existing objects are not replaced.
func (c *Client) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.serviceKey).
		SetHeader("Content-Type", contentType).
		SetHeader("x-upsert", "false").
		SetBody(r).
		Post(c.objectURL(objectPath))
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// Download streams the object. The caller closes the reader.
func (c *Client) Download(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.serviceKey).
		SetDoNotParseResponse(true).
		Get(c.objectURL(objectPath))
	if err != nil {
		return nil, fmt.Errorf("download object: %w", err)
	}
	body := resp.RawBody()
	if resp.StatusCode() >= 300 {
		defer body.Close() //nolint:errcheck
		payload, _ := io.ReadAll(io.LimitReader(body, 4096))
		return nil, (&rawResponse{status: resp.StatusCode(), body: payload}).err()
	}
	return body, nil
}

// Remove deletes the objects from the bucket in one call.
func (c *Client) Remove(ctx context.Context, objectPaths ...string) error {
	if len(objectPaths) == 0 {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.serviceKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]string{"prefixes": objectPaths}).
		Delete("/storage/v1/object/" + url.PathEscape(c.bucket))
	if err != nil {
		return fmt.Errorf("remove objects: %w", err)
	}
	if resp.IsError() {
		return apiError(resp)
	}
	return nil
}

// PublicURL returns the public object URL for the bucket.
func (c *Client) PublicURL(objectPath string) string {
	return c.baseURL + "/storage/v1/object/public/" + url.PathEscape(c.bucket) + "/" + escapePath(objectPath)
}

func (c *Client) objectURL(objectPath string) string {
	return "/storage/v1/object/" + url.PathEscape(c.bucket) + "/" + escapePath(objectPath)
}

func escapePath(objectPath string) string {
	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

type rawResponse struct {
	status int
	body   []byte
}

func (r *rawResponse) err() error {
	var body errorBody
	_ = json.Unmarshal(r.body, &body)
	return &APIError{Status: r.status, Message: firstNonEmpty(body.Message, body.Msg, body.Error, string(r.body))}
}
