// @title HealthMate API
// @version 0.1.0
// @description Data access API for HealthMate's personal health tracking
// @BasePath /
// @accept json
// @produce json
// @schemes https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	muxprom "gitlab.com/msvechla/mux-prometheus/pkg/middleware"

	"github.com/healthmate-org/healthmate-api/api"
	"github.com/healthmate-org/healthmate-api/auth"
	"github.com/healthmate-org/healthmate-api/infrastructure"
	"github.com/healthmate-org/healthmate-api/usecase"
)

type (
	// ServiceConfig holds the configuration for the `healthmate-api` service
	ServiceConfig struct {
		Port          int           `default:"9127"`
		MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
		MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"healthmate"`
		MongoTimeout  time.Duration `envconfig:"MONGO_TIMEOUT" default:"10s"`
		OpenAIKey     string        `envconfig:"OPENAI_API_KEY" required:"true"`
		OpenAIModel   string        `envconfig:"OPENAI_MODEL"`
		BucketSuffix  string        `envconfig:"BUCKET_SUFFIX" required:"true"`
		Region        string        `envconfig:"REGION" default:"eu-west-1"`
		S3EndpointURL string        `envconfig:"S3_ENDPOINT_URL"`
		AuthSecret    string        `envconfig:"API_SECRET" required:"true"`
		Auth0Domain   string        `envconfig:"AUTH0_DOMAIN"`
		Auth0Audience string        `envconfig:"AUTH0_AUDIENCE"`
	}
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05",
		LogFormat:       "[%lvl%]: %time% - %msg%\n",
	})

	var config ServiceConfig
	if err := envconfig.Process("healthmate", &config); err != nil {
		logger.Fatal("Problem loading config: ", err)
	}

	// AWS part configuration
	endpointURL := config.S3EndpointURL
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if endpointURL != "" {
			logger.Println("Using custom s3 endpoint: ", endpointURL)
			return aws.Endpoint{
				PartitionID:       "aws",
				URL:               endpointURL,
				SigningRegion:     region,
				HostnameImmutable: true,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithEndpointResolverWithOptions(customResolver), awsconfig.WithRegion(config.Region))
	if err != nil {
		logger.Fatal(err)
	}
	s3Client := s3.NewFromConfig(awsCfg)
	uploader, err := infrastructure.NewS3Uploader(s3Client, config.BucketSuffix)
	if err != nil {
		logger.Fatal(err)
	}

	authClient, err := auth.NewClient(config.AuthSecret, config.Auth0Domain, config.Auth0Audience, logger)
	if err != nil {
		logger.Fatal(err)
	}

	generativeService, err := infrastructure.NewOpenAIGenerativeService(config.OpenAIKey, config.OpenAIModel, logger)
	if err != nil {
		logger.Fatal(err)
	}

	store, err := infrastructure.NewStoreClient(&infrastructure.MongoConfig{
		URI:      config.MongoURI,
		Database: config.MongoDatabase,
		Timeout:  config.MongoTimeout,
	}, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if err := store.Start(context.Background()); err != nil {
		logger.Fatal(err)
	}

	/*
	 * Instrumentation setup
	 */
	instrumentation := muxprom.NewCustomInstrumentation(true, "healthmate", "api", prometheus.DefBuckets, nil, prometheus.DefaultRegisterer)

	healthDataRepository := infrastructure.NewHealthDataMongoRepository(store)
	chatRepository := infrastructure.NewChatMongoRepository(store)
	symptomRepository := infrastructure.NewSymptomMongoRepository(store)

	healthDataUseCase := usecase.NewHealthDataUseCase(logger, healthDataRepository)
	chatUseCase := usecase.NewChatUseCase(logger, chatRepository, generativeService)
	symptomUseCase := usecase.NewSymptomUseCase(logger, symptomRepository, generativeService)
	exporter := usecase.NewExporter(logger, healthDataUseCase, uploader)
	exportController := api.NewExportController(logger, exporter)

	rtr := mux.NewRouter()
	rtr.Use(instrumentation.Middleware)
	rtr.Path("/metrics").Handler(promhttp.Handler())

	healthAPI := api.InitAPI(healthDataUseCase, chatUseCase, symptomUseCase, exportController, store, authClient, logger)
	healthAPI.SetHandlers("", rtr)

	// ability to return compressed (gzip/deflate) responses if client browser
	// accepts it
	gzipHandler := handlers.CompressHandler(rtr)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: gzipHandler,
	}

	go func() {
		logger.Printf("serving on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(err)
		}
	}()

	// Wait for SIGINT (Ctrl+C) or SIGTERM to stop the service
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Printf("mongo close: %v", err)
	}
}
