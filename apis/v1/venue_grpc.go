package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const VenueServiceName = "thirdplace.v1.VenueService"

type VenueServiceServer interface {
	CreateVenue(context.Context, *CreateVenueRequest) (*VenueResponse, error)
	GetVenue(context.Context, *GetVenueRequest) (*VenueResponse, error)
	UpdateVenue(context.Context, *UpdateVenueRequest) (*VenueResponse, error)
	DeleteVenue(context.Context, *DeleteVenueRequest) (*DeleteVenueResponse, error)
	ListVenues(context.Context, *ListVenuesRequest) (*ListVenuesResponse, error)
	SearchVenues(context.Context, *SearchVenuesRequest) (*ListVenuesResponse, error)
	RefreshVenueRelationships(context.Context, *RefreshVenueRelationshipsRequest) (*RefreshVenueRelationshipsResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
}

// UnimplementedVenueServiceServer can be embedded for forward compatibility.
type UnimplementedVenueServiceServer struct{}

func (UnimplementedVenueServiceServer) CreateVenue(context.Context, *CreateVenueRequest) (*VenueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateVenue not implemented")
}

func (UnimplementedVenueServiceServer) GetVenue(context.Context, *GetVenueRequest) (*VenueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVenue not implemented")
}

func (UnimplementedVenueServiceServer) UpdateVenue(context.Context, *UpdateVenueRequest) (*VenueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateVenue not implemented")
}

func (UnimplementedVenueServiceServer) DeleteVenue(context.Context, *DeleteVenueRequest) (*DeleteVenueResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteVenue not implemented")
}

func (UnimplementedVenueServiceServer) ListVenues(context.Context, *ListVenuesRequest) (*ListVenuesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListVenues not implemented")
}

func (UnimplementedVenueServiceServer) SearchVenues(context.Context, *SearchVenuesRequest) (*ListVenuesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SearchVenues not implemented")
}

func (UnimplementedVenueServiceServer) RefreshVenueRelationships(context.Context, *RefreshVenueRelationshipsRequest) (*RefreshVenueRelationshipsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshVenueRelationships not implemented")
}

func (UnimplementedVenueServiceServer) ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListCategories not implemented")
}

var VenueService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: VenueServiceName,
	HandlerType: (*VenueServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(VenueServiceName, "CreateVenue", VenueServiceServer.CreateVenue),
		unary(VenueServiceName, "GetVenue", VenueServiceServer.GetVenue),
		unary(VenueServiceName, "UpdateVenue", VenueServiceServer.UpdateVenue),
		unary(VenueServiceName, "DeleteVenue", VenueServiceServer.DeleteVenue),
		unary(VenueServiceName, "ListVenues", VenueServiceServer.ListVenues),
		unary(VenueServiceName, "SearchVenues", VenueServiceServer.SearchVenues),
		unary(VenueServiceName, "RefreshVenueRelationships", VenueServiceServer.RefreshVenueRelationships),
		unary(VenueServiceName, "ListCategories", VenueServiceServer.ListCategories),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "thirdplace/v1/venue.json",
}

func RegisterVenueServiceServer(s grpc.ServiceRegistrar, srv VenueServiceServer) {
	s.RegisterService(&VenueService_ServiceDesc, srv)
}

type VenueServiceClient interface {
	CreateVenue(ctx context.Context, in *CreateVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error)
	GetVenue(ctx context.Context, in *GetVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error)
	UpdateVenue(ctx context.Context, in *UpdateVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error)
	DeleteVenue(ctx context.Context, in *DeleteVenueRequest, opts ...grpc.CallOption) (*DeleteVenueResponse, error)
	ListVenues(ctx context.Context, in *ListVenuesRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error)
	SearchVenues(ctx context.Context, in *SearchVenuesRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error)
	RefreshVenueRelationships(ctx context.Context, in *RefreshVenueRelationshipsRequest, opts ...grpc.CallOption) (*RefreshVenueRelationshipsResponse, error)
	ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
}

type venueServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVenueServiceClient(cc grpc.ClientConnInterface) VenueServiceClient {
	return &venueServiceClient{cc: cc}
}

func (c *venueServiceClient) CreateVenue(ctx context.Context, in *CreateVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error) {
	return invoke[VenueResponse](ctx, c.cc, VenueServiceName, "CreateVenue", in, opts)
}

func (c *venueServiceClient) GetVenue(ctx context.Context, in *GetVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error) {
	return invoke[VenueResponse](ctx, c.cc, VenueServiceName, "GetVenue", in, opts)
}

func (c *venueServiceClient) UpdateVenue(ctx context.Context, in *UpdateVenueRequest, opts ...grpc.CallOption) (*VenueResponse, error) {
	return invoke[VenueResponse](ctx, c.cc, VenueServiceName, "UpdateVenue", in, opts)
}

func (c *venueServiceClient) DeleteVenue(ctx context.Context, in *DeleteVenueRequest, opts ...grpc.CallOption) (*DeleteVenueResponse, error) {
	return invoke[DeleteVenueResponse](ctx, c.cc, VenueServiceName, "DeleteVenue", in, opts)
}

func (c *venueServiceClient) ListVenues(ctx context.Context, in *ListVenuesRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error) {
	return invoke[ListVenuesResponse](ctx, c.cc, VenueServiceName, "ListVenues", in, opts)
}

func (c *venueServiceClient) SearchVenues(ctx context.Context, in *SearchVenuesRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error) {
	return invoke[ListVenuesResponse](ctx, c.cc, VenueServiceName, "SearchVenues", in, opts)
}

func (c *venueServiceClient) RefreshVenueRelationships(ctx context.Context, in *RefreshVenueRelationshipsRequest, opts ...grpc.CallOption) (*RefreshVenueRelationshipsResponse, error) {
	return invoke[RefreshVenueRelationshipsResponse](ctx, c.cc, VenueServiceName, "RefreshVenueRelationships", in, opts)
}

func (c *venueServiceClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, VenueServiceName, "ListCategories", in, opts)
}
