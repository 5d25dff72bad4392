package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const BlogServiceName = "thirdplace.v1.BlogService"

type BlogServiceServer interface {
	CreateBlog(context.Context, *CreateBlogRequest) (*BlogResponse, error)
	GetBlog(context.Context, *GetBlogRequest) (*BlogResponse, error)
	UpdateBlog(context.Context, *UpdateBlogRequest) (*BlogResponse, error)
	PublishBlog(context.Context, *PublishBlogRequest) (*BlogResponse, error)
	DeleteBlog(context.Context, *DeleteBlogRequest) (*DeleteBlogResponse, error)
	ListBlogs(context.Context, *ListBlogsRequest) (*ListBlogsResponse, error)
	LinkBlogToVenues(context.Context, *LinkBlogToVenuesRequest) (*LinkBlogToVenuesResponse, error)
	GetVenuesInBlog(context.Context, *GetVenuesInBlogRequest) (*GetVenuesInBlogResponse, error)
	GetBlogsAboutVenue(context.Context, *GetBlogsAboutVenueRequest) (*ListBlogsResponse, error)
	GetRelatedBlogs(context.Context, *GetRelatedBlogsRequest) (*ListBlogsResponse, error)
	GetVenueRecommendations(context.Context, *GetVenueRecommendationsRequest) (*ListVenuesResponse, error)
	UploadImage(context.Context, *UploadImageRequest) (*UploadImageResponse, error)
}

// UnimplementedBlogServiceServer can be embedded for forward compatibility.
type UnimplementedBlogServiceServer struct{}

func (UnimplementedBlogServiceServer) CreateBlog(context.Context, *CreateBlogRequest) (*BlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateBlog not implemented")
}

func (UnimplementedBlogServiceServer) GetBlog(context.Context, *GetBlogRequest) (*BlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBlog not implemented")
}

func (UnimplementedBlogServiceServer) UpdateBlog(context.Context, *UpdateBlogRequest) (*BlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateBlog not implemented")
}

func (UnimplementedBlogServiceServer) PublishBlog(context.Context, *PublishBlogRequest) (*BlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method PublishBlog not implemented")
}

func (UnimplementedBlogServiceServer) DeleteBlog(context.Context, *DeleteBlogRequest) (*DeleteBlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DeleteBlog not implemented")
}

func (UnimplementedBlogServiceServer) ListBlogs(context.Context, *ListBlogsRequest) (*ListBlogsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListBlogs not implemented")
}

func (UnimplementedBlogServiceServer) LinkBlogToVenues(context.Context, *LinkBlogToVenuesRequest) (*LinkBlogToVenuesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LinkBlogToVenues not implemented")
}

func (UnimplementedBlogServiceServer) GetVenuesInBlog(context.Context, *GetVenuesInBlogRequest) (*GetVenuesInBlogResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVenuesInBlog not implemented")
}

func (UnimplementedBlogServiceServer) GetBlogsAboutVenue(context.Context, *GetBlogsAboutVenueRequest) (*ListBlogsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBlogsAboutVenue not implemented")
}

func (UnimplementedBlogServiceServer) GetRelatedBlogs(context.Context, *GetRelatedBlogsRequest) (*ListBlogsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRelatedBlogs not implemented")
}

func (UnimplementedBlogServiceServer) GetVenueRecommendations(context.Context, *GetVenueRecommendationsRequest) (*ListVenuesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetVenueRecommendations not implemented")
}

func (UnimplementedBlogServiceServer) UploadImage(context.Context, *UploadImageRequest) (*UploadImageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UploadImage not implemented")
}

var BlogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BlogServiceName,
	HandlerType: (*BlogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(BlogServiceName, "CreateBlog", BlogServiceServer.CreateBlog),
		unary(BlogServiceName, "GetBlog", BlogServiceServer.GetBlog),
		unary(BlogServiceName, "UpdateBlog", BlogServiceServer.UpdateBlog),
		unary(BlogServiceName, "PublishBlog", BlogServiceServer.PublishBlog),
		unary(BlogServiceName, "DeleteBlog", BlogServiceServer.DeleteBlog),
		unary(BlogServiceName, "ListBlogs", BlogServiceServer.ListBlogs),
		unary(BlogServiceName, "LinkBlogToVenues", BlogServiceServer.LinkBlogToVenues),
		unary(BlogServiceName, "GetVenuesInBlog", BlogServiceServer.GetVenuesInBlog),
		unary(BlogServiceName, "GetBlogsAboutVenue", BlogServiceServer.GetBlogsAboutVenue),
		unary(BlogServiceName, "GetRelatedBlogs", BlogServiceServer.GetRelatedBlogs),
		unary(BlogServiceName, "GetVenueRecommendations", BlogServiceServer.GetVenueRecommendations),
		unary(BlogServiceName, "UploadImage", BlogServiceServer.UploadImage),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "thirdplace/v1/blog.json",
}

func RegisterBlogServiceServer(s grpc.ServiceRegistrar, srv BlogServiceServer) {
	s.RegisterService(&BlogService_ServiceDesc, srv)
}

type BlogServiceClient interface {
	CreateBlog(ctx context.Context, in *CreateBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error)
	GetBlog(ctx context.Context, in *GetBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error)
	UpdateBlog(ctx context.Context, in *UpdateBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error)
	PublishBlog(ctx context.Context, in *PublishBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error)
	DeleteBlog(ctx context.Context, in *DeleteBlogRequest, opts ...grpc.CallOption) (*DeleteBlogResponse, error)
	ListBlogs(ctx context.Context, in *ListBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error)
	LinkBlogToVenues(ctx context.Context, in *LinkBlogToVenuesRequest, opts ...grpc.CallOption) (*LinkBlogToVenuesResponse, error)
	GetVenuesInBlog(ctx context.Context, in *GetVenuesInBlogRequest, opts ...grpc.CallOption) (*GetVenuesInBlogResponse, error)
	GetBlogsAboutVenue(ctx context.Context, in *GetBlogsAboutVenueRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error)
	GetRelatedBlogs(ctx context.Context, in *GetRelatedBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error)
	GetVenueRecommendations(ctx context.Context, in *GetVenueRecommendationsRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error)
	UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*UploadImageResponse, error)
}

type blogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBlogServiceClient(cc grpc.ClientConnInterface) BlogServiceClient {
	return &blogServiceClient{cc: cc}
}

func (c *blogServiceClient) CreateBlog(ctx context.Context, in *CreateBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error) {
	return invoke[BlogResponse](ctx, c.cc, BlogServiceName, "CreateBlog", in, opts)
}

func (c *blogServiceClient) GetBlog(ctx context.Context, in *GetBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error) {
	return invoke[BlogResponse](ctx, c.cc, BlogServiceName, "GetBlog", in, opts)
}

func (c *blogServiceClient) UpdateBlog(ctx context.Context, in *UpdateBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error) {
	return invoke[BlogResponse](ctx, c.cc, BlogServiceName, "UpdateBlog", in, opts)
}

func (c *blogServiceClient) PublishBlog(ctx context.Context, in *PublishBlogRequest, opts ...grpc.CallOption) (*BlogResponse, error) {
	return invoke[BlogResponse](ctx, c.cc, BlogServiceName, "PublishBlog", in, opts)
}

func (c *blogServiceClient) DeleteBlog(ctx context.Context, in *DeleteBlogRequest, opts ...grpc.CallOption) (*DeleteBlogResponse, error) {
	return invoke[DeleteBlogResponse](ctx, c.cc, BlogServiceName, "DeleteBlog", in, opts)
}

func (c *blogServiceClient) ListBlogs(ctx context.Context, in *ListBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error) {
	return invoke[ListBlogsResponse](ctx, c.cc, BlogServiceName, "ListBlogs", in, opts)
}

func (c *blogServiceClient) LinkBlogToVenues(ctx context.Context, in *LinkBlogToVenuesRequest, opts ...grpc.CallOption) (*LinkBlogToVenuesResponse, error) {
	return invoke[LinkBlogToVenuesResponse](ctx, c.cc, BlogServiceName, "LinkBlogToVenues", in, opts)
}

func (c *blogServiceClient) GetVenuesInBlog(ctx context.Context, in *GetVenuesInBlogRequest, opts ...grpc.CallOption) (*GetVenuesInBlogResponse, error) {
	return invoke[GetVenuesInBlogResponse](ctx, c.cc, BlogServiceName, "GetVenuesInBlog", in, opts)
}

func (c *blogServiceClient) GetBlogsAboutVenue(ctx context.Context, in *GetBlogsAboutVenueRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error) {
	return invoke[ListBlogsResponse](ctx, c.cc, BlogServiceName, "GetBlogsAboutVenue", in, opts)
}

func (c *blogServiceClient) GetRelatedBlogs(ctx context.Context, in *GetRelatedBlogsRequest, opts ...grpc.CallOption) (*ListBlogsResponse, error) {
	return invoke[ListBlogsResponse](ctx, c.cc, BlogServiceName, "GetRelatedBlogs", in, opts)
}

func (c *blogServiceClient) GetVenueRecommendations(ctx context.Context, in *GetVenueRecommendationsRequest, opts ...grpc.CallOption) (*ListVenuesResponse, error) {
	return invoke[ListVenuesResponse](ctx, c.cc, BlogServiceName, "GetVenueRecommendations", in, opts)
}

func (c *blogServiceClient) UploadImage(ctx context.Context, in *UploadImageRequest, opts ...grpc.CallOption) (*UploadImageResponse, error) {
	return invoke[UploadImageResponse](ctx, c.cc, BlogServiceName, "UploadImage", in, opts)
}
