package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var blogCmd = &cobra.Command{
	Use:   "blog",
	Short: "blog commands",
}

func init() {
	rootCmd.AddCommand(blogCmd)
	blogCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	blogCmd.AddCommand(createBlogCmd())
	blogCmd.AddCommand(getBlogCmd())
	blogCmd.AddCommand(showBlogCmd())
	blogCmd.AddCommand(listBlogsCmd())
	blogCmd.AddCommand(updateBlogCmd())
	blogCmd.AddCommand(publishBlogCmd())
	blogCmd.AddCommand(deleteBlogCmd())
	blogCmd.AddCommand(linkBlogCmd())
	blogCmd.AddCommand(blogVenuesCmd())
	blogCmd.AddCommand(relatedBlogsCmd())
	blogCmd.AddCommand(recommendVenuesCmd())
	blogCmd.AddCommand(uploadImageCmd())
}

func createBlogCmd() *cobra.Command {
	var title string
	var content string
	var file string
	var category string
	var tags []string
	var author string
	var venues []string
	var publish bool

	var required = []string{"title"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a blog",
		Example: "thirdplace blog create -t <title> -f post.md -v <venue-id>:featured --publish",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			body, err := readContent(content, file)
			if err != nil {
				logrus.Error(err)
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.CreateBlog(tokenContext(), &v1.CreateBlogRequest{
				Title:     title,
				Content:   body,
				Category:  category,
				Tags:      tags,
				AuthorUid: author,
				Venues:    parseVenueLinks(venues),
				Publish:   publish,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("blog created with id: %s", res.Blog.Id)
			printWordCount(res.WordCount)
		},
	}

	command.Flags().StringVarP(&title, "title", "t", "", "title of the blog (required)")
	command.Flags().StringVarP(&content, "content", "c", "", "markdown content")
	command.Flags().StringVarP(&file, "file", "f", "", "read markdown content from a file")
	command.Flags().StringVar(&category, "category", "", "category")
	command.Flags().StringSliceVar(&tags, "tag", nil, "tag, repeatable")
	command.Flags().StringVar(&author, "author", "", "author uid")
	command.Flags().StringArrayVarP(&venues, "venue", "v", nil, "venue as id[:type[:context]], repeatable")
	command.Flags().BoolVar(&publish, "publish", false, "publish immediately")

	command.Flags().SortFlags = false

	return command
}

func getBlogCmd() *cobra.Command {
	var blogID string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a blog",
		Example: "thirdplace blog get -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetBlog(tokenContext(), &v1.GetBlogRequest{Id: blogID})
			if err != nil {
				logrus.Error(err)
				return
			}

			blog := res.Blog
			printField("ID", blog.Id)
			printField("Title", blog.Title)
			printField("Status", blog.Status)
			printField("Published", formatTime(blog.PublishedAt))
			printField("Words", strconv.Itoa(blog.WordCount))
			printField("Read time", fmt.Sprintf("%d min", blog.ReadTime))
			printField("Views", strconv.FormatInt(blog.ViewCount, 10))
			printField("Tags", strings.Join(blog.Tags, ", "))
			printField("Venue categories", strings.Join(blog.VenueCategories, ", "))
			printField("Locations", strings.Join(blog.LocationTags, ", "))
			printField("Excerpt", blog.Excerpt)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")

	return command
}

func showBlogCmd() *cobra.Command {
	var blogID string
	var style string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "show",
		Short:   "render a blog in the terminal",
		Example: "thirdplace blog show -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetBlog(tokenContext(), &v1.GetBlogRequest{Id: blogID, CountView: true})
			if err != nil {
				logrus.Error(err)
				return
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(style),
				glamour.WithWordWrap(80),
			)
			if err != nil {
				logrus.Errorf("failed to create renderer: %v", err)
				return
			}

			out, err := r.Render("# " + res.Blog.Title + "\n\n" + res.Blog.Content)
			if err != nil {
				logrus.Errorf("failed to render markdown: %v", err)
				return
			}
			fmt.Print(out)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")
	command.Flags().StringVar(&style, "style", "dark", "glamour style")

	return command
}

func listBlogsCmd() *cobra.Command {
	var status string
	var category string
	var author string
	var page int
	var pageSize int

	command := &cobra.Command{
		Use:     "list",
		Short:   "list blogs",
		Example: "thirdplace blog list --status published",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.ListBlogs(tokenContext(), &v1.ListBlogsRequest{
				Status:    status,
				Category:  category,
				AuthorUid: author,
				Page:      page,
				PageSize:  pageSize,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printBlogs(res.Blogs)
			printField("Total", strconv.FormatInt(res.Total, 10))
		},
	}

	command.Flags().StringVar(&status, "status", "", "draft or published")
	command.Flags().StringVar(&category, "category", "", "category")
	command.Flags().StringVar(&author, "author", "", "author uid")
	command.Flags().IntVar(&page, "page", 0, "page number")
	command.Flags().IntVar(&pageSize, "page-size", 20, "page size")

	return command
}

func updateBlogCmd() *cobra.Command {
	var blogID string
	var title string
	var content string
	var file string
	var category string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update a blog",
		Example: "thirdplace blog update -b <blog-id> -f post.md",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &v1.UpdateBlogRequest{Id: blogID}
			if cmd.Flag("title").Changed {
				req.Title = &title
			}
			if cmd.Flag("category").Changed {
				req.Category = &category
			}
			if cmd.Flag("content").Changed || cmd.Flag("file").Changed {
				body, err := readContent(content, file)
				if err != nil {
					logrus.Error(err)
					return
				}
				req.Content = &body
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.UpdateBlog(tokenContext(), req)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("blog %s updated", res.Blog.Id)
			printWordCount(res.WordCount)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")
	command.Flags().StringVarP(&title, "title", "t", "", "new title")
	command.Flags().StringVarP(&content, "content", "c", "", "new markdown content")
	command.Flags().StringVarP(&file, "file", "f", "", "read new content from a file")
	command.Flags().StringVar(&category, "category", "", "new category")

	return command
}

func publishBlogCmd() *cobra.Command {
	var blogID string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "publish",
		Short:   "publish a blog",
		Example: "thirdplace blog publish -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.PublishBlog(tokenContext(), &v1.PublishBlogRequest{Id: blogID})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("blog %s published at %s", res.Blog.Id, formatTime(res.Blog.PublishedAt))
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")

	return command
}

func deleteBlogCmd() *cobra.Command {
	var blogID string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a blog",
		Example: "thirdplace blog delete -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			if _, err := client.DeleteBlog(tokenContext(), &v1.DeleteBlogRequest{Id: blogID}); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("blog %s deleted", blogID)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")

	return command
}

func linkBlogCmd() *cobra.Command {
	var blogID string
	var venues []string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "link",
		Short:   "replace the venues a blog links to",
		Example: "thirdplace blog link -b <blog-id> -v <venue-id>:featured -v <venue-id>:compared:\"quieter than\"",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.LinkBlogToVenues(tokenContext(), &v1.LinkBlogToVenuesRequest{
				BlogId: blogID,
				Venues: parseVenueLinks(venues),
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Order", "Venue", "Name", "Type", "Category", "City"})
			for _, rel := range res.VenueRelationships {
				table.Append([]string{
					strconv.Itoa(rel.OrderInBlog),
					rel.VenueId,
					rel.VenueName,
					rel.RelationshipType,
					rel.VenueCategory,
					rel.VenueCity,
				})
			}
			table.Render()

			if res.PrimaryVenue != nil {
				printField("Primary venue", *res.PrimaryVenue)
			}
			printField("Venue categories", strings.Join(res.VenueCategories, ", "))
			printField("Locations", strings.Join(res.LocationTags, ", "))
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")
	command.Flags().StringArrayVarP(&venues, "venue", "v", nil, "venue as id[:type[:context]], repeatable; none clears the links")

	return command
}

func blogVenuesCmd() *cobra.Command {
	var blogID string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "venues",
		Short:   "list the venues a blog links to",
		Example: "thirdplace blog venues -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetVenuesInBlog(tokenContext(), &v1.GetVenuesInBlogRequest{BlogId: blogID})
			if err != nil {
				logrus.Error(err)
				return
			}

			if len(res.Venues) == 0 {
				color.Yellow("no venues")
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Order", "ID", "Name", "Type", "Context"})
			for _, v := range res.Venues {
				table.Append([]string{strconv.Itoa(v.OrderInBlog), v.Venue.Id, v.Venue.Name, v.RelationshipType, v.ContextInBlog})
			}
			table.Render()
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")

	return command
}

func relatedBlogsCmd() *cobra.Command {
	var blogID string
	var venueIDs []string
	var count int

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "related",
		Short:   "list published blogs sharing a venue",
		Example: "thirdplace blog related -b <blog-id> -n 3",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetRelatedBlogs(tokenContext(), &v1.GetRelatedBlogsRequest{
				BlogId:   blogID,
				VenueIds: venueIDs,
				Count:    count,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printBlogs(res.Blogs)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")
	command.Flags().StringSliceVarP(&venueIDs, "venue", "v", nil, "venue ids, defaults to the blog's own")
	command.Flags().IntVarP(&count, "count", "n", 3, "number of blogs")

	return command
}

func recommendVenuesCmd() *cobra.Command {
	var blogID string

	var required = []string{"blog-id"}

	command := &cobra.Command{
		Use:     "recommend",
		Short:   "suggest venues to link from a blog",
		Example: "thirdplace blog recommend -b <blog-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetVenueRecommendations(tokenContext(), &v1.GetVenueRecommendationsRequest{BlogId: blogID})
			if err != nil {
				logrus.Error(err)
				return
			}

			printVenues(res.Venues)
		},
	}

	command.Flags().StringVarP(&blogID, "blog-id", "b", "", "blog id (required)")

	return command
}

func uploadImageCmd() *cobra.Command {
	var file string
	var folder string

	var required = []string{"file"}

	command := &cobra.Command{
		Use:     "upload",
		Short:   "upload an image for blog content",
		Example: "thirdplace blog upload -f photo.jpg --folder blog-images",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			data, err := os.ReadFile(file)
			if err != nil {
				logrus.Error(err)
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.UploadImage(tokenContext(), &v1.UploadImageRequest{
				Name:   filepath.Base(file),
				Folder: folder,
				Data:   data,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			color.Green("![%s](%s)", filepath.Base(file), res.Url)
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "image file (required)")
	command.Flags().StringVar(&folder, "folder", "blog-images", "upload folder")

	return command
}
