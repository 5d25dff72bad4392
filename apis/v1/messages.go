package v1

import "time"

type Blog struct {
	Id                 string               `json:"id"`
	Title              string               `json:"title"`
	Content            string               `json:"content,omitempty"`
	Excerpt            string               `json:"excerpt"`
	Category           string               `json:"category,omitempty"`
	Tags               []string             `json:"tags"`
	AuthorUid          string               `json:"authorUid,omitempty"`
	Status             string               `json:"status"`
	FeaturedImage      string               `json:"featuredImage,omitempty"`
	ViewCount          int64                `json:"viewCount"`
	WordCount          int                  `json:"wordCount"`
	ReadTime           int                  `json:"readTime"`
	LinkedVenues       []string             `json:"linkedVenues"`
	VenueRelationships []*VenueRelationship `json:"venueRelationships"`
	PrimaryVenue       *string              `json:"primaryVenue,omitempty"`
	VenueCategories    []string             `json:"venueCategories"`
	LocationTags       []string             `json:"locationTags"`
	PublishedAt        *time.Time           `json:"publishedAt,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

type VenueRelationship struct {
	VenueId          string    `json:"venueId"`
	RelationshipType string    `json:"relationshipType"`
	ContextInBlog    string    `json:"contextInBlog,omitempty"`
	OrderInBlog      int       `json:"orderInBlog"`
	VenueName        string    `json:"venueName"`
	VenueCategory    string    `json:"venueCategory"`
	VenueCity        string    `json:"venueCity"`
	VenuePhoto       string    `json:"venuePhoto,omitempty"`
	CachedAt         time.Time `json:"cachedAt"`
}

// VenueLink is an authored reference from a blog to a venue.
type VenueLink struct {
	VenueId          string `json:"venueId"`
	RelationshipType string `json:"relationshipType,omitempty"`
	ContextInBlog    string `json:"contextInBlog,omitempty"`
}

type Venue struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Photos      []string  `json:"photos"`
	OwnerUid    string    `json:"ownerUid,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type VenueInBlog struct {
	Venue            *Venue `json:"venue"`
	RelationshipType string `json:"relationshipType"`
	ContextInBlog    string `json:"contextInBlog,omitempty"`
	OrderInBlog      int    `json:"orderInBlog"`
}

type Category struct {
	Id   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type WordCount struct {
	Count    int  `json:"count"`
	Max      int  `json:"max"`
	Exceeded bool `json:"exceeded"`
}

type CreateBlogRequest struct {
	Title         string       `json:"title"`
	Content       string       `json:"content"`
	Category      string       `json:"category,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	AuthorUid     string       `json:"authorUid,omitempty"`
	FeaturedImage string       `json:"featuredImage,omitempty"`
	Venues        []*VenueLink `json:"venues,omitempty"`
	Publish       bool         `json:"publish,omitempty"`
}

// UpdateBlogRequest leaves nil fields unchanged. Venues replace the whole
// relationship set when SetVenues is true.
type UpdateBlogRequest struct {
	Id            string       `json:"id"`
	Title         *string      `json:"title,omitempty"`
	Content       *string      `json:"content,omitempty"`
	Category      *string      `json:"category,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
	FeaturedImage *string      `json:"featuredImage,omitempty"`
	SetVenues     bool         `json:"setVenues,omitempty"`
	Venues        []*VenueLink `json:"venues,omitempty"`
}

type BlogResponse struct {
	Blog      *Blog      `json:"blog"`
	WordCount *WordCount `json:"wordCount,omitempty"`
}

type GetBlogRequest struct {
	Id        string `json:"id"`
	CountView bool   `json:"countView,omitempty"`
}

type PublishBlogRequest struct {
	Id string `json:"id"`
}

type DeleteBlogRequest struct {
	Id string `json:"id"`
}

type DeleteBlogResponse struct{}

type ListBlogsRequest struct {
	Status    string `json:"status,omitempty"`
	Category  string `json:"category,omitempty"`
	AuthorUid string `json:"authorUid,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"pageSize,omitempty"`
}

type ListBlogsResponse struct {
	Blogs []*Blog `json:"blogs"`
	Total int64   `json:"total"`
}

type LinkBlogToVenuesRequest struct {
	BlogId string       `json:"blogId"`
	Venues []*VenueLink `json:"venues"`
}

type LinkBlogToVenuesResponse struct {
	LinkedVenues       []string             `json:"linkedVenues"`
	VenueRelationships []*VenueRelationship `json:"venueRelationships"`
	PrimaryVenue       *string              `json:"primaryVenue,omitempty"`
	VenueCategories    []string             `json:"venueCategories"`
	LocationTags       []string             `json:"locationTags"`
}

type GetVenuesInBlogRequest struct {
	BlogId string `json:"blogId"`
}

type GetVenuesInBlogResponse struct {
	Venues []*VenueInBlog `json:"venues"`
}

type GetBlogsAboutVenueRequest struct {
	VenueId          string `json:"venueId"`
	Count            int    `json:"count,omitempty"`
	RelationshipType string `json:"relationshipType,omitempty"`
}

type GetRelatedBlogsRequest struct {
	BlogId   string   `json:"blogId"`
	VenueIds []string `json:"venueIds,omitempty"`
	Count    int      `json:"count,omitempty"`
}

type GetVenueRecommendationsRequest struct {
	BlogId string `json:"blogId"`
}

type UploadImageRequest struct {
	Name   string `json:"name"`
	Folder string `json:"folder,omitempty"`
	Data   []byte `json:"data"`
}

type UploadImageResponse struct {
	Url string `json:"url"`
}

type CreateVenueRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Address     string   `json:"address,omitempty"`
	City        string   `json:"city"`
	Latitude    float64  `json:"latitude,omitempty"`
	Longitude   float64  `json:"longitude,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	OwnerUid    string   `json:"ownerUid,omitempty"`
}

// UpdateVenueRequest leaves nil fields unchanged.
type UpdateVenueRequest struct {
	Id          string   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Address     *string  `json:"address,omitempty"`
	City        *string  `json:"city,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Photos      []string `json:"photos,omitempty"`
}

type VenueResponse struct {
	Venue *Venue `json:"venue"`
}

type GetVenueRequest struct {
	Id string `json:"id"`
}

type DeleteVenueRequest struct {
	Id string `json:"id"`
}

type DeleteVenueResponse struct{}

type ListVenuesRequest struct {
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

type ListVenuesResponse struct {
	Venues []*Venue `json:"venues"`
}

type SearchVenuesRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type RefreshVenueRelationshipsRequest struct {
	VenueId string `json:"venueId"`
}

type RefreshVenueRelationshipsResponse struct {
	UpdatedBlogs int `json:"updatedBlogs"`
}

type ListCategoriesRequest struct{}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}
