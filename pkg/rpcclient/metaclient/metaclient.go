// Package metaclient implements capability.VersionService against the
// metadata service's version-bump RPC: a request carrying {inodeid, fsid}
// gets back {statuscode, version}, where any non-OK status is treated as
// an error. Built on pkg/rpcclient's shared JSON transport.
package metaclient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lattixfs/s3adaptor/pkg/rpcclient"
)

// statusOK is the only status the metadata service returns on success.
const statusOK = "OK"

// Client implements capability.VersionService.
type Client struct {
	rpc  *rpcclient.Client
	path string
}

// New constructs a Client against baseURL. path defaults to
// "/v1/inodes/s3-version" when empty.
func New(baseURL string, path string) *Client {
	if path == "" {
		path = "/v1/inodes/s3-version"
	}
	return &Client{rpc: rpcclient.New(baseURL), path: path}
}

// WithToken sets the bearer token sent with every request.
func (c *Client) WithToken(token string) *Client {
	c.rpc = c.rpc.WithToken(token)
	return c
}

type updateVersionRequest struct {
	InodeID        uint64 `json:"inodeid"`
	FSID           uint64 `json:"fsid"`
	IdempotencyKey string `json:"idempotency_key"`
}

type updateVersionResponse struct {
	StatusCode string `json:"statuscode"`
	Version    uint64 `json:"version"`
}

// UpdateInodeS3Version implements capability.VersionService. Each call
// generates a fresh idempotency key, so a repeated call (the Adaptor itself
// never retries) carries a different key from the call it repeats.
func (c *Client) UpdateInodeS3Version(ctx context.Context, fsid, inodeID uint64) (uint64, error) {
	req := updateVersionRequest{
		InodeID:        inodeID,
		FSID:           fsid,
		IdempotencyKey: uuid.New().String(),
	}
	var resp updateVersionResponse
	if err := c.rpc.Do(ctx, c.path, req, &resp); err != nil {
		return 0, fmt.Errorf("metaclient: update inode s3 version: %w", err)
	}
	if resp.StatusCode != statusOK {
		return 0, fmt.Errorf("metaclient: update inode s3 version: non-OK status %q", resp.StatusCode)
	}
	return resp.Version, nil
}
