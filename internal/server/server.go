package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	v1 "github.com/emrgen/thirdplace/apis/v1"
	"github.com/emrgen/thirdplace/internal/cache"
	"github.com/emrgen/thirdplace/internal/compress"
	"github.com/emrgen/thirdplace/internal/config"
	"github.com/emrgen/thirdplace/internal/job"
	"github.com/emrgen/thirdplace/internal/jobs"
	"github.com/emrgen/thirdplace/internal/linker"
	"github.com/emrgen/thirdplace/internal/module"
	"github.com/emrgen/thirdplace/internal/service"
	"github.com/emrgen/thirdplace/internal/store"
	"github.com/emrgen/thirdplace/internal/upload"
	"github.com/gobuffalo/packr"
	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcrecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Server represents the server
type Server struct {
	cfg *config.Config
}

// NewServer creates a new server
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.cfg); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the grpc and http servers and blocks until interrupted.
func Start(cfg *config.Config) error {
	var err error

	grpcPort := ":" + cfg.GrpcPort
	httpPort := ":" + cfg.HttpPort

	db, err := config.OpenDb(cfg)
	if err != nil {
		return err
	}

	gl, err := net.Listen("tcp", grpcPort)
	if err != nil {
		return err
	}

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	blogStore := store.NewGormStore(db)
	if err = blogStore.Migrate(); err != nil {
		return err
	}

	compressor, err := compress.ByName(cfg.Compression)
	if err != nil {
		return err
	}

	be, err := openBackends(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer be.Close()

	lookup := cache.NewCachedVenueLookup(blogStore, be.venueCache)
	venueLinker := linker.New(blogStore, lookup, blogStore)
	images := upload.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.BaseURL)

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcmiddleware.ChainUnaryServer(
			grpcrecovery.UnaryServerInterceptor(),
			// log the request time
			UnaryGrpcRequestTimeInterceptor(),
			// ListCategories needs no token
			module.UnaryServerAuthTokenInterceptor(
				tokenVerifier(cfg.AuthToken),
				"/"+v1.VenueServiceName+"/ListCategories",
			),
		)),
	)

	v1.RegisterBlogServiceServer(grpcServer, service.NewBlogService(blogStore, venueLinker, compressor, be.views, images, cfg.MaxWords))
	v1.RegisterVenueServiceServer(grpcServer, service.NewVenueService(blogStore, be.venueCache, be.queue, venueLinker))

	// connect the rest gateway to the grpc server
	endpoint := "localhost" + grpcPort
	conn, err := grpc.NewClient(endpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(UnaryRequestTimeInterceptor()),
	)
	if err != nil {
		return err
	}
	defer conn.Close()

	mux := runtime.NewServeMux()
	if err = registerRoutes(mux, v1.NewBlogServiceClient(conn), v1.NewVenueServiceClient(conn)); err != nil {
		return err
	}

	apiMux := http.NewServeMux()
	openapiDocs := packr.NewBox("../../docs/v1")
	docsPath := "/v1/docs/"
	apiMux.Handle(docsPath, http.StripPrefix(docsPath, http.FileServer(openapiDocs)))
	uploadsPath := "/uploads/"
	apiMux.Handle(uploadsPath, http.StripPrefix(uploadsPath, http.FileServer(http.Dir(cfg.Upload.Dir))))
	apiMux.Handle("/", mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(HttpRequestTimeMiddleware(apiMux)),
	}

	venueSync := job.NewVenueSync(be.queue, blogStore, venueLinker)
	executor := jobs.NewTaskExecutor(
		jobs.NewRelationshipSyncTask(cfg.Jobs.RelationshipSync, blogStore, venueLinker),
		jobs.NewViewFlushTask(cfg.Jobs.ViewFlush, be.views, blogStore),
	)
	if err = executor.Run(); err != nil {
		return err
	}

	// make sure to wait for the servers to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	// Start the rest gateway
	go func() {
		defer wg.Done()
		logrus.Info("starting rest gateway on: ", httpPort)
		logrus.Info("click on the following link to view the API documentation: http://localhost", httpPort, "/v1/docs/")
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest gateway: %v", err)
			}
		}
		logrus.Infof("rest gateway stopped")
	}()

	// Start the grpc server
	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting grpc server on: ", grpcPort)
		if err := grpcServer.Serve(gl); err != nil {
			logrus.Infof("grpc failed to start: %v", err)
		}
		logrus.Infof("grpc server stopped")
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		venueSync.Run()
		logrus.Infof("venue sync stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	executor.Stop()
	venueSync.Stop()
	grpcServer.Stop()
	err = restServer.Shutdown(context.Background())
	if err != nil {
		logrus.Errorf("error stopping rest gateway: %v", err)
	}

	wg.Wait()

	return nil
}
