package thirdplace

import (
	"io"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const DefaultAddr = ":4020"

type Client interface {
	io.Closer
	v1.BlogServiceClient
	v1.VenueServiceClient
}

type client struct {
	conn *grpc.ClientConn
	v1.BlogServiceClient
	v1.VenueServiceClient
}

// NewClient dials the grpc api at addr.
func NewClient(addr string) (Client, error) {
	if addr == "" {
		addr = DefaultAddr
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, err
	}
	return &client{
		conn:               conn,
		BlogServiceClient:  v1.NewBlogServiceClient(conn),
		VenueServiceClient: v1.NewVenueServiceClient(conn),
	}, nil
}

func (c *client) Close() error {
	return c.conn.Close()
}
