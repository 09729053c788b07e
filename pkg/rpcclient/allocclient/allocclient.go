// Package allocclient implements capability.ChunkAllocator against the
// space-allocation service's chunk-id RPC: a request carrying {fsid} gets
// back {status, chunkid}, where any non-OK status is treated as an error.
// Built on pkg/rpcclient's shared JSON transport.
package allocclient

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lattixfs/s3adaptor/pkg/rpcclient"
)

const statusOK = "OK"

// Client implements capability.ChunkAllocator.
type Client struct {
	rpc  *rpcclient.Client
	path string
}

// New constructs a Client against baseURL. path defaults to
// "/v1/chunks/allocate" when empty.
func New(baseURL string, path string) *Client {
	if path == "" {
		path = "/v1/chunks/allocate"
	}
	return &Client{rpc: rpcclient.New(baseURL), path: path}
}

// WithToken sets the bearer token sent with every request.
func (c *Client) WithToken(token string) *Client {
	c.rpc = c.rpc.WithToken(token)
	return c
}

type allocateChunkRequest struct {
	FSID           uint64 `json:"fsid"`
	IdempotencyKey string `json:"idempotency_key"`
}

type allocateChunkResponse struct {
	Status  string `json:"status"`
	ChunkID uint64 `json:"chunkid"`
}

// AllocateS3Chunk implements capability.ChunkAllocator. As with
// metaclient.UpdateInodeS3Version, each call generates a fresh idempotency
// key, so a repeated call carries a different key from the call it repeats.
func (c *Client) AllocateS3Chunk(ctx context.Context, fsid uint64) (uint64, error) {
	req := allocateChunkRequest{
		FSID:           fsid,
		IdempotencyKey: uuid.New().String(),
	}
	var resp allocateChunkResponse
	if err := c.rpc.Do(ctx, c.path, req, &resp); err != nil {
		return 0, fmt.Errorf("allocclient: allocate s3 chunk: %w", err)
	}
	if resp.Status != statusOK {
		return 0, fmt.Errorf("allocclient: allocate s3 chunk: non-OK status %q", resp.Status)
	}
	return resp.ChunkID, nil
}
