package cmd

import (
	"github.com/emrgen/thirdplace/internal/config"
	"github.com/emrgen/thirdplace/internal/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var grpcPort string
	var httpPort string
	var verbose bool

	command := &cobra.Command{
		Use:   "serve",
		Short: "start the grpc api and rest gateway",
		Run: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			cfg := config.LoadConfig()
			if cmd.Flag("grpc-port").Changed {
				cfg.GrpcPort = grpcPort
			}
			if cmd.Flag("http-port").Changed {
				cfg.HttpPort = httpPort
			}

			server.NewServer(cfg).Start()
		},
	}

	command.Flags().StringVar(&grpcPort, "grpc-port", "4020", "grpc listen port")
	command.Flags().StringVar(&httpPort, "http-port", "4021", "rest listen port")
	command.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	return command
}
