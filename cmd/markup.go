package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/emrgen/thirdplace/internal/markup"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var markupCmd = &cobra.Command{
	Use:   "markup",
	Short: "convert blog content locally",
}

func init() {
	rootCmd.AddCommand(markupCmd)
	markupCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	markupCmd.AddCommand(markupConvertCmd("html", "convert markdown to display html", markup.ToDisplay))
	markupCmd.AddCommand(markupConvertCmd("md", "convert display html to markdown", markup.ToStorage))
	markupCmd.AddCommand(markupConvertCmd("text", "strip markdown to plain text", markup.PlainText))
	markupCmd.AddCommand(markupWordsCmd())
}

// readInput reads the file, or stdin when file is empty or "-".
func readInput(file string) (string, error) {
	if file == "" || file == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(file)
	return string(data), err
}

func markupConvertCmd(use, short string, convert func(string) string) *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: "thirdplace markup " + use + " -f <file>",
		Run: func(cmd *cobra.Command, args []string) {
			input, err := readInput(file)
			if err != nil {
				logrus.Error(err)
				return
			}
			fmt.Println(convert(input))
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "input file, stdin when empty")

	return command
}

func markupWordsCmd() *cobra.Command {
	var file string

	command := &cobra.Command{
		Use:   "words",
		Short: "count words and estimate read time",
		Run: func(cmd *cobra.Command, args []string) {
			input, err := readInput(file)
			if err != nil {
				logrus.Error(err)
				return
			}
			words := markup.WordCount(input)
			printField("Words", strconv.Itoa(words))
			printField("Read time", fmt.Sprintf("%d min", markup.ReadTime(words)))
		},
	}

	command.Flags().StringVarP(&file, "file", "f", "", "input file, stdin when empty")

	return command
}
