package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var serverAddr string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "thirdplace",
	Short: "third place blogs and venues",
	Example: `thirdplace serve
thirdplace venue create -n "Lantern Books" -c bookstore --city Portland
thirdplace blog create -t <title> -f post.md
thirdplace blog link -b <blog-id> -v <venue-id>:featured -v <venue-id>
thirdplace blog related -b <blog-id>
thirdplace venue blogs -v <venue-id>
thirdplace markup html -f post.md`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(contextCommand)
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rootCmd.PersistentFlags().StringVar(&serverAddr, "addr", ":4020", "grpc address of the server")

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
