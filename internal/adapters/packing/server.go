package packing

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/trading"
)

const (
	serviceName = "packing.FreightPacking"
	packMethod  = "/" + serviceName + "/Pack"
)

// FreightPackingServer is the server side of the packing service
type FreightPackingServer interface {
	Pack(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// Server serves packing requests with a local packer
type Server struct {
	packer trading.FreightPacker
}

func NewServer(packer trading.FreightPacker) *Server {
	return &Server{packer: packer}
}

func (s *Server) Pack(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lots, capacity, err := decodeRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	packed, err := s.packer.Pack(ctx, lots, capacity)
	if err != nil {
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	resp, err := encodeResponse(packed)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// RegisterFreightPackingServer registers srv on s
func RegisterFreightPackingServer(s grpc.ServiceRegistrar, srv FreightPackingServer) {
	s.RegisterService(&serviceDesc, srv)
}

func packHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := &structpb.Struct{}
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FreightPackingServer).Pack(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: packMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FreightPackingServer).Pack(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*FreightPackingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Pack", Handler: packHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "packing.proto",
}
