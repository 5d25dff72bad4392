package cmd

import (
	"fmt"
	"os"
	"strings"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var venueCmd = &cobra.Command{
	Use:   "venue",
	Short: "venue commands",
}

func init() {
	rootCmd.AddCommand(venueCmd)
	venueCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	venueCmd.AddCommand(createVenueCmd())
	venueCmd.AddCommand(getVenueCmd())
	venueCmd.AddCommand(updateVenueCmd())
	venueCmd.AddCommand(deleteVenueCmd())
	venueCmd.AddCommand(listVenuesCmd())
	venueCmd.AddCommand(searchVenuesCmd())
	venueCmd.AddCommand(venueBlogsCmd())
	venueCmd.AddCommand(refreshVenueCmd())
	venueCmd.AddCommand(listCategoriesCmd())
}

func createVenueCmd() *cobra.Command {
	var name string
	var category string
	var city string
	var address string
	var description string
	var photos []string

	var required = []string{"name", "category", "city"}

	command := &cobra.Command{
		Use:     "create",
		Short:   "create a venue",
		Example: `thirdplace venue create -n "Lantern Books" -c bookstore --city Portland`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.CreateVenue(tokenContext(), &v1.CreateVenueRequest{
				Name:        name,
				Category:    category,
				City:        city,
				Address:     address,
				Description: description,
				Photos:      photos,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("venue created with id: %s", res.Venue.Id)
		},
	}

	command.Flags().StringVarP(&name, "name", "n", "", "venue name (required)")
	command.Flags().StringVarP(&category, "category", "c", "", "category id (required)")
	command.Flags().StringVar(&city, "city", "", "city (required)")
	command.Flags().StringVar(&address, "address", "", "street address")
	command.Flags().StringVarP(&description, "description", "d", "", "description")
	command.Flags().StringSliceVar(&photos, "photo", nil, "photo url, repeatable; the first is primary")

	command.Flags().SortFlags = false

	return command
}

func getVenueCmd() *cobra.Command {
	var venueID string

	var required = []string{"venue-id"}

	command := &cobra.Command{
		Use:     "get",
		Short:   "get a venue",
		Example: "thirdplace venue get -v <venue-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetVenue(tokenContext(), &v1.GetVenueRequest{Id: venueID})
			if err != nil {
				logrus.Error(err)
				return
			}

			venue := res.Venue
			printField("ID", venue.Id)
			printField("Name", venue.Name)
			printField("Category", venue.Category)
			printField("City", venue.City)
			printField("Address", venue.Address)
			printField("Location", fmt.Sprintf("%.5f, %.5f", venue.Latitude, venue.Longitude))
			printField("Photos", strings.Join(venue.Photos, ", "))
			printField("Description", venue.Description)
		},
	}

	command.Flags().StringVarP(&venueID, "venue-id", "v", "", "venue id (required)")

	return command
}

func updateVenueCmd() *cobra.Command {
	var venueID string
	var name string
	var category string
	var city string
	var address string
	var description string
	var photos []string

	var required = []string{"venue-id"}

	command := &cobra.Command{
		Use:     "update",
		Short:   "update a venue; blogs pick up the change in the background",
		Example: `thirdplace venue update -v <venue-id> -n "Lantern Books & Tea"`,
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			req := &v1.UpdateVenueRequest{Id: venueID}
			if cmd.Flag("name").Changed {
				req.Name = &name
			}
			if cmd.Flag("category").Changed {
				req.Category = &category
			}
			if cmd.Flag("city").Changed {
				req.City = &city
			}
			if cmd.Flag("address").Changed {
				req.Address = &address
			}
			if cmd.Flag("description").Changed {
				req.Description = &description
			}
			if cmd.Flag("photo").Changed {
				req.Photos = photos
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.UpdateVenue(tokenContext(), req)
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("venue %s updated", res.Venue.Id)
		},
	}

	command.Flags().StringVarP(&venueID, "venue-id", "v", "", "venue id (required)")
	command.Flags().StringVarP(&name, "name", "n", "", "venue name")
	command.Flags().StringVarP(&category, "category", "c", "", "category id")
	command.Flags().StringVar(&city, "city", "", "city")
	command.Flags().StringVar(&address, "address", "", "street address")
	command.Flags().StringVarP(&description, "description", "d", "", "description")
	command.Flags().StringSliceVar(&photos, "photo", nil, "photo url, repeatable")

	return command
}

func deleteVenueCmd() *cobra.Command {
	var venueID string

	var required = []string{"venue-id"}

	command := &cobra.Command{
		Use:     "delete",
		Short:   "delete a venue",
		Example: "thirdplace venue delete -v <venue-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			if _, err := client.DeleteVenue(tokenContext(), &v1.DeleteVenueRequest{Id: venueID}); err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("venue %s deleted", venueID)
		},
	}

	command.Flags().StringVarP(&venueID, "venue-id", "v", "", "venue id (required)")

	return command
}

func listVenuesCmd() *cobra.Command {
	var category string
	var limit int

	command := &cobra.Command{
		Use:     "list",
		Short:   "list venues",
		Example: "thirdplace venue list -c cafe",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.ListVenues(tokenContext(), &v1.ListVenuesRequest{Category: category, Limit: limit})
			if err != nil {
				logrus.Error(err)
				return
			}

			printVenues(res.Venues)
		},
	}

	command.Flags().StringVarP(&category, "category", "c", "", "category id")
	command.Flags().IntVarP(&limit, "limit", "l", 20, "max venues")

	return command
}

func searchVenuesCmd() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:     "search <query>",
		Short:   "fuzzy search venues by name and city",
		Example: "thirdplace venue search lantern",
		Args:    cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.SearchVenues(tokenContext(), &v1.SearchVenuesRequest{
				Query: strings.Join(args, " "),
				Limit: limit,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printVenues(res.Venues)
		},
	}

	command.Flags().IntVarP(&limit, "limit", "l", 10, "max venues")

	return command
}

func venueBlogsCmd() *cobra.Command {
	var venueID string
	var relationshipType string
	var count int

	var required = []string{"venue-id"}

	command := &cobra.Command{
		Use:     "blogs",
		Short:   "list published blogs about a venue",
		Example: "thirdplace venue blogs -v <venue-id> --type featured",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.GetBlogsAboutVenue(tokenContext(), &v1.GetBlogsAboutVenueRequest{
				VenueId:          venueID,
				Count:            count,
				RelationshipType: relationshipType,
			})
			if err != nil {
				logrus.Error(err)
				return
			}

			printBlogs(res.Blogs)
		},
	}

	command.Flags().StringVarP(&venueID, "venue-id", "v", "", "venue id (required)")
	command.Flags().StringVar(&relationshipType, "type", "", "featured, mentioned or compared")
	command.Flags().IntVarP(&count, "count", "n", 10, "number of blogs")

	return command
}

func refreshVenueCmd() *cobra.Command {
	var venueID string

	var required = []string{"venue-id"}

	command := &cobra.Command{
		Use:     "refresh",
		Short:   "refresh the venue copies held by blogs",
		Example: "thirdplace venue refresh -v <venue-id>",
		Run: func(cmd *cobra.Command, args []string) {
			if checkMissingFlags(cmd, required) {
				return
			}

			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.RefreshVenueRelationships(tokenContext(), &v1.RefreshVenueRelationshipsRequest{VenueId: venueID})
			if err != nil {
				logrus.Error(err)
				return
			}

			logrus.Infof("refreshed %d blogs", res.UpdatedBlogs)
		},
	}

	command.Flags().StringVarP(&venueID, "venue-id", "v", "", "venue id (required)")

	return command
}

func listCategoriesCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "categories",
		Short: "list venue categories",
		Run: func(cmd *cobra.Command, args []string) {
			client, ok := newClient()
			if !ok {
				return
			}
			defer client.Close()

			res, err := client.ListCategories(tokenContext(), &v1.ListCategoriesRequest{})
			if err != nil {
				logrus.Error(err)
				return
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Name", "Icon"})
			for _, c := range res.Categories {
				table.Append([]string{c.Id, c.Name, c.Icon})
			}
			table.Render()
		},
	}

	return command
}
