package main

import (
	"flag"
	"os"
	"time"

	"iptriage/blacklist"
	"iptriage/config"
	"iptriage/features"
	"iptriage/geodb"
	"iptriage/ipaddresses"
	"iptriage/training"

	"github.com/rs/zerolog"
)

// Offline corpus preparation job: reads the raw training corpus, produces
// the frozen feature artifacts and the labeled feature matrix the external
// model trainer consumes.
func main() {
	logLevel := flag.String("loglevel", "info", "sets log level. Can be one of: debug, info, warn, error, fatal, panic.")
	configFile := flag.String("config", "", "if set, load the service configuration from the given YAML file instead of using defaults")
	corpusFile := flag.String("corpus", "training_ip_data.csv", "path of the raw training corpus CSV")
	matrixFile := flag.String("out", "training_matrix.csv", "path the labeled feature matrix is written to")
	parallelism := flag.Int("parallelism", training.DefaultEnrichmentParallelism, "max concurrent geo lookups during enrichment")
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

	corpus, err := os.Open(*corpusFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while opening the training corpus")
	}
	defer corpus.Close()

	records, err := training.LoadCorpus(corpus)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while reading the training corpus")
	}

	preparer := training.NewPreparer(logger, ac, geoDB, bl, *parallelism)
	prepared, err := preparer.Prepare(records)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while preparing the training corpus")
	}

	if err := prepared.Artifacts.Save(&features.ArtifactFileSystemImpl{}, cfg.Artifacts.Features); err != nil {
		logger.Fatal().Err(err).Msg("Error while saving the feature artifacts")
	}

	out, err := os.Create(*matrixFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Error while creating the matrix output file")
	}
	defer out.Close()

	if err := training.WriteMatrixCSV(out, prepared); err != nil {
		logger.Fatal().Err(err).Msg("Error while writing the labeled feature matrix")
	}

	logger.Info().Int("rows", len(prepared.Matrix)).Str("out", *matrixFile).Msg("Corpus preparation completed")
}
