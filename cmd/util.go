package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/emrgen/thirdplace"
	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newClient() (thirdplace.Client, bool) {
	client, err := thirdplace.NewClient(serverAddr)
	if err != nil {
		logrus.Error(err)
		return nil, false
	}
	return client, true
}

func printField(label, value string) {
	color.Set(color.FgCyan)
	fmt.Print(label)
	color.Unset()
	fmt.Printf(": %s\n", value)
}

// checkMissingFlags reports whether any required flag is missing, printing
// usage when it is.
func checkMissingFlags(cmd *cobra.Command, flags []string) bool {
	var missingFlags []string
	var providedFlags []string
	for _, required := range flags {
		if !cmd.Flag(required).Changed {
			missingFlags = append(missingFlags, required)
		} else {
			value := cmd.Flag(required).Value.String()
			providedFlags = append(providedFlags, fmt.Sprintf("--%s=%s", required, value))
		}
	}

	if len(missingFlags) > 0 {
		var msg string
		for _, f := range missingFlags {
			msg += fmt.Sprintf("--%s ", f)
		}

		color.Red("missing: %s\n", msg)
		if len(providedFlags) > 0 {
			provided := strings.Join(providedFlags, " ")
			color.Green("provide: %s\n", provided)
		}

		cmd.Println("")
		_ = cmd.Usage()

		return true
	}

	return false
}

// readContent returns inline content, or the file's content when a path is
// given.
func readContent(inline, path string) (string, error) {
	if path == "" {
		return inline, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseVenueLinks reads venue flags of the form id[:type[:context]].
func parseVenueLinks(values []string) []*v1.VenueLink {
	links := make([]*v1.VenueLink, 0, len(values))
	for _, value := range values {
		parts := strings.SplitN(value, ":", 3)
		link := &v1.VenueLink{VenueId: parts[0]}
		if len(parts) > 1 {
			link.RelationshipType = parts[1]
		}
		if len(parts) > 2 {
			link.ContextInBlog = parts[2]
		}
		links = append(links, link)
	}
	return links
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func printBlogs(blogs []*v1.Blog) {
	if len(blogs) == 0 {
		color.Yellow("no blogs")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Status", "Words", "Views", "Venues", "Published"})
	for _, blog := range blogs {
		table.Append([]string{
			blog.Id,
			blog.Title,
			blog.Status,
			strconv.Itoa(blog.WordCount),
			strconv.FormatInt(blog.ViewCount, 10),
			strconv.Itoa(len(blog.LinkedVenues)),
			formatTime(blog.PublishedAt),
		})
	}
	table.Render()
}

func printVenues(venues []*v1.Venue) {
	if len(venues) == 0 {
		color.Yellow("no venues")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Category", "City"})
	for _, venue := range venues {
		table.Append([]string{venue.Id, venue.Name, venue.Category, venue.City})
	}
	table.Render()
}

func printWordCount(wc *v1.WordCount) {
	if wc == nil {
		return
	}
	if wc.Exceeded {
		color.Yellow("word count %d exceeds %d", wc.Count, wc.Max)
		return
	}
	printField("Words", fmt.Sprintf("%d/%d", wc.Count, wc.Max))
}
