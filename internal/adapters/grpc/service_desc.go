package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "domnus.economy.v1.EconomyService"

// Full method names
const (
	MethodGetOverview    = "/" + ServiceName + "/GetOverview"
	MethodPlaceOrder     = "/" + ServiceName + "/PlaceOrder"
	MethodManageProjects = "/" + ServiceName + "/ManageProjects"
	MethodUpdateSpending = "/" + ServiceName + "/UpdateSpending"
	MethodTime           = "/" + ServiceName + "/Time"
)

// EconomyServiceServer is the server API. Every message is a
// google.protobuf.Struct so clients need no generated code.
type EconomyServiceServer interface {
	GetOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ManageProjects(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateSpending(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Time(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterEconomyServiceServer registers srv on s
func RegisterEconomyServiceServer(s grpc.ServiceRegistrar, srv EconomyServiceServer) {
	s.RegisterService(&economyServiceDesc, srv)
}

func unaryHandler(
	fullMethod string,
	call func(EconomyServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EconomyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(EconomyServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var economyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EconomyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetOverview",
			Handler:    unaryHandler(MethodGetOverview, EconomyServiceServer.GetOverview),
		},
		{
			MethodName: "PlaceOrder",
			Handler:    unaryHandler(MethodPlaceOrder, EconomyServiceServer.PlaceOrder),
		},
		{
			MethodName: "ManageProjects",
			Handler:    unaryHandler(MethodManageProjects, EconomyServiceServer.ManageProjects),
		},
		{
			MethodName: "UpdateSpending",
			Handler:    unaryHandler(MethodUpdateSpending, EconomyServiceServer.UpdateSpending),
		},
		{
			MethodName: "Time",
			Handler:    unaryHandler(MethodTime, EconomyServiceServer.Time),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "domnus/economy/v1/economy.proto",
}
