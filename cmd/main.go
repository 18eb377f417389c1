package main

import (
	"audiobook-generation-api/application/services"
	"audiobook-generation-api/config"
	"audiobook-generation-api/infrastructure/adapters"
	"audiobook-generation-api/infrastructure/gin_interface/controllers"
	"audiobook-generation-api/middleware"
	"fmt"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	ttsConfig, err := config.GetTTSConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get tts config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	voiceConfig := config.GetVoiceConfig()

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	// Nonblocking: a full pool rejects instead of blocking the caller, so a
	// saturated pool surfaces as a failed enqueue rather than a stall.
	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler), ants.WithNonblocking(true))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	blobStore := adapters.NewS3BlobStore(s3Client, s3Config)
	jobRecorder := adapters.NewDynamoJobRecorder(zeroLogger, dynamoClient, dynamoConfig)

	statusNotifier := adapters.NewEventsourceStatusNotifier()
	defer statusNotifier.Close()

	contentFetcher := adapters.NewContentFetcher(zeroLogger, pipelineConfig.ResultFetchTimeout)
	resultFetcher := adapters.NewResultFetcher(contentFetcher)

	synthesisBackend := adapters.NewF5TTSBackend(zeroLogger, ttsConfig)
	if ttsConfig.Provider == config.MockProvider {
		synthesisBackend = adapters.NewMockTTSBackend(zeroLogger)
	}

	textExtractor := adapters.NewPDFTextExtractor(zeroLogger)
	voiceResolver := adapters.NewYtdlpVoiceResolver(zeroLogger, blobStore, voiceConfig)

	textChunker := services.NewTextChunker()
	segmentSynthesizer := services.NewSegmentSynthesizer(zeroLogger, synthesisBackend, resultFetcher)

	pipelineOrchestrator := services.NewAudiobookPipelineOrchestrator(zeroLogger, workerPool,
		jobRecorder, statusNotifier, blobStore, textExtractor, voiceResolver, textChunker,
		segmentSynthesizer, pipelineConfig.MaxSegmentChars, pipelineConfig.Parallelism,
		pipelineConfig.JobTimeout)

	jobsController := controllers.NewAudiobookJobsController(zeroLogger, workerPool, jobRecorder,
		pipelineOrchestrator, statusNotifier)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.RequestLogger(zeroLogger))

	jobsController.RegisterRoutes(router)

	err = router.Run(":8080")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
