package main

import (
	"flag"
	"os"
	"time"

	"iptriage/blacklist"
	"iptriage/classifier"
	"iptriage/config"
	"iptriage/features"
	"iptriage/geodb"
	"iptriage/httpapi"
	"iptriage/ipaddresses"
	"iptriage/logging"
	"iptriage/triage"

	"github.com/rs/zerolog"
)

// Dependency injection composition root
func main() {
	logLevel := flag.String("loglevel", "info", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configFile := flag.String("config", "", "if set, load the service configuration from the given YAML file instead of using defaults")
	flag.Parse()

	loglevel, _ := zerolog.ParseLevel(*logLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(loglevel).With().Timestamp().Caller().Logger()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logger.Fatal().Err(err).Msg("Error while loading configuration")
		}
	}

	ac := ipaddresses.NewClassifier()

	bl, err := blacklist.NewBlacklistEngine(&blacklist.FileSystemImpl{}, cfg.Artifacts.Blacklist)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading the blacklist")
	}

	gfs := geodb.NewGeoIPFileSystem(logger)
	geoDB, err := geodb.NewGeoDB(logger, gfs, cfg.Artifacts.GeoData)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading the GeoIP data set")
	}

	artifacts, err := features.LoadArtifacts(&features.ArtifactFileSystemImpl{}, cfg.Artifacts.Features)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading the feature artifacts")
	}

	model, err := classifier.NewForestClassifier(logger, &classifier.ModelFileSystemImpl{}, cfg.Artifacts.Model)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while loading the classifier model")
	}

	fa := features.NewAssembler(logger, ac, geoDB, artifacts)
	rl := logging.NewZerologResultsLogger(logger)

	t, err := triage.NewServer(logger, ac, bl, fa, model, rl)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while creating the triage pipeline")
	}

	s := httpapi.NewServer(logger, t, ac, geoDB)
	if err := s.Run(cfg.ListenAddr); err != nil {
		logger.Fatal().Err(err).Msg("Error while running the triage HTTP server")
	}
}
