package packing

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// GRPCPackingClient implements trading.FreightPacker against a remote packing service
type GRPCPackingClient struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

var _ trading.FreightPacker = (*GRPCPackingClient)(nil)

// NewGRPCPackingClient creates a client for the service at address.
// The connection is established lazily on the first call.
func NewGRPCPackingClient(address string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCPackingClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create packing client for %s: %w", address, err)
	}
	return &GRPCPackingClient{conn: conn, timeout: timeout}, nil
}

// Close closes the gRPC connection
func (c *GRPCPackingClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *GRPCPackingClient) Pack(ctx context.Context, lots []world.FreightLot, capacity int) ([]world.FreightLot, error) {
	req, err := encodeRequest(lots, capacity)
	if err != nil {
		return nil, fmt.Errorf("failed to encode packing request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, packMethod, req, resp); err != nil {
		return nil, fmt.Errorf("gRPC Pack failed: %w", err)
	}

	packed, err := decodeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("invalid packing response: %w", err)
	}
	return packed, nil
}
