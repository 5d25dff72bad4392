package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// route forwards a REST request to the grpc endpoint. The JSON body, when
// present, is decoded first and bind then fills path and query values.
func route[Req, Resp any](bind func(req *Req, r *http.Request, params map[string]string) error, call func(context.Context, *Req, ...grpc.CallOption) (*Resp, error)) runtime.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		req := new(Req)
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
				writeError(w, status.Errorf(codes.InvalidArgument, "invalid request body: %v", err))
				return
			}
		}
		if bind != nil {
			if err := bind(req, r, params); err != nil {
				writeError(w, status.Error(codes.InvalidArgument, err.Error()))
				return
			}
		}

		ctx := r.Context()
		if auth := r.Header.Get("Authorization"); auth != "" {
			ctx = metadata.AppendToOutgoingContext(ctx, "authorization", auth)
		}

		resp, err := call(ctx, req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// bodyRoute forwards a request that carries everything in its body.
func bodyRoute[Req, Resp any](call func(context.Context, *Req, ...grpc.CallOption) (*Resp, error)) runtime.HandlerFunc {
	return route[Req, Resp](nil, call)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Warnf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	st := status.Convert(err)
	writeJSON(w, runtime.HTTPStatusFromCode(st.Code()), map[string]any{
		"code":    st.Code().String(),
		"message": st.Message(),
	})
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return n, nil
}

// registerRoutes maps the REST surface onto the grpc clients.
func registerRoutes(mux *runtime.ServeMux, blogs v1.BlogServiceClient, venues v1.VenueServiceClient) error {
	routes := []struct {
		method  string
		pattern string
		handler runtime.HandlerFunc
	}{
		{http.MethodPost, "/v1/blogs", bodyRoute(blogs.CreateBlog)},
		{http.MethodGet, "/v1/blogs", route(func(req *v1.ListBlogsRequest, r *http.Request, _ map[string]string) error {
			q := r.URL.Query()
			req.Status = q.Get("status")
			req.Category = q.Get("category")
			req.AuthorUid = q.Get("author")
			var err error
			if req.Page, err = queryInt(r, "page"); err != nil {
				return err
			}
			req.PageSize, err = queryInt(r, "page_size")
			return err
		}, blogs.ListBlogs)},
		{http.MethodGet, "/v1/blogs/{id}", route(func(req *v1.GetBlogRequest, r *http.Request, p map[string]string) error {
			req.Id = p["id"]
			req.CountView = r.URL.Query().Get("count_view") == "true"
			return nil
		}, blogs.GetBlog)},
		{http.MethodPut, "/v1/blogs/{id}", route(func(req *v1.UpdateBlogRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, blogs.UpdateBlog)},
		{http.MethodPost, "/v1/blogs/{id}/publish", route(func(req *v1.PublishBlogRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, blogs.PublishBlog)},
		{http.MethodDelete, "/v1/blogs/{id}", route(func(req *v1.DeleteBlogRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, blogs.DeleteBlog)},
		{http.MethodPut, "/v1/blogs/{id}/venues", route(func(req *v1.LinkBlogToVenuesRequest, _ *http.Request, p map[string]string) error {
			req.BlogId = p["id"]
			return nil
		}, blogs.LinkBlogToVenues)},
		{http.MethodGet, "/v1/blogs/{id}/venues", route(func(req *v1.GetVenuesInBlogRequest, _ *http.Request, p map[string]string) error {
			req.BlogId = p["id"]
			return nil
		}, blogs.GetVenuesInBlog)},
		{http.MethodGet, "/v1/blogs/{id}/related", route(func(req *v1.GetRelatedBlogsRequest, r *http.Request, p map[string]string) error {
			req.BlogId = p["id"]
			req.VenueIds = r.URL.Query()["venue"]
			var err error
			req.Count, err = queryInt(r, "count")
			return err
		}, blogs.GetRelatedBlogs)},
		{http.MethodGet, "/v1/blogs/{id}/recommendations", route(func(req *v1.GetVenueRecommendationsRequest, _ *http.Request, p map[string]string) error {
			req.BlogId = p["id"]
			return nil
		}, blogs.GetVenueRecommendations)},
		{http.MethodPost, "/v1/images", bodyRoute(blogs.UploadImage)},

		{http.MethodPost, "/v1/venues", bodyRoute(venues.CreateVenue)},
		{http.MethodGet, "/v1/venues", route(func(req *v1.ListVenuesRequest, r *http.Request, _ map[string]string) error {
			req.Category = r.URL.Query().Get("category")
			var err error
			req.Limit, err = queryInt(r, "limit")
			return err
		}, venues.ListVenues)},
		{http.MethodGet, "/v1/venues/{id}", route(func(req *v1.GetVenueRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, venues.GetVenue)},
		{http.MethodPut, "/v1/venues/{id}", route(func(req *v1.UpdateVenueRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, venues.UpdateVenue)},
		{http.MethodDelete, "/v1/venues/{id}", route(func(req *v1.DeleteVenueRequest, _ *http.Request, p map[string]string) error {
			req.Id = p["id"]
			return nil
		}, venues.DeleteVenue)},
		{http.MethodGet, "/v1/venues/{id}/blogs", route(func(req *v1.GetBlogsAboutVenueRequest, r *http.Request, p map[string]string) error {
			req.VenueId = p["id"]
			req.RelationshipType = r.URL.Query().Get("type")
			var err error
			req.Count, err = queryInt(r, "count")
			return err
		}, blogs.GetBlogsAboutVenue)},
		{http.MethodPost, "/v1/venues/{id}/refresh", route(func(req *v1.RefreshVenueRelationshipsRequest, _ *http.Request, p map[string]string) error {
			req.VenueId = p["id"]
			return nil
		}, venues.RefreshVenueRelationships)},
		{http.MethodGet, "/v1/search/venues", route(func(req *v1.SearchVenuesRequest, r *http.Request, _ map[string]string) error {
			req.Query = r.URL.Query().Get("q")
			var err error
			req.Limit, err = queryInt(r, "limit")
			return err
		}, venues.SearchVenues)},
		{http.MethodGet, "/v1/categories", bodyRoute(venues.ListCategories)},
	}

	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return err
		}
	}

	return nil
}
