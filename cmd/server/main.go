package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lintang-b-s/Navigatorx/pkg/config"
	"github.com/lintang-b-s/Navigatorx/pkg/httpapi"
	"github.com/lintang-b-s/Navigatorx/pkg/logger"
	"github.com/lintang-b-s/Navigatorx/pkg/roadgraph"
)

var (
	osmPath    = flag.String("osm", "", "path to an OpenStreetMap PBF extract to load the road graph from")
	sqlitePath = flag.String("road_info", "", "path to the road classification sqlite database (defaults to config's ROAD_GRAPH_SOURCE)")
)

// main boots pkg/httpapi against a graph loaded from an OSM extract,
// the way cmd/engine/main.go wires the teacher's routing engine into
// pkg/http.NewServer.
func main() {
	flag.Parse()

	if err := config.Load(); err != nil {
		panic(err)
	}

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if *osmPath == "" {
		log.Fatal("missing required -osm flag")
	}

	roadInfoPath := *sqlitePath
	if roadInfoPath == "" {
		roadInfoPath = config.RoadGraphSource()
	}

	roadInfo, err := roadgraph.OpenSQLiteRoadInfo(roadInfoPath)
	if err != nil {
		log.Fatal("opening road info database", zap.Error(err))
	}
	defer roadInfo.Close()

	graph, err := roadgraph.LoadOSMPBF(*osmPath, roadInfo, log)
	if err != nil {
		log.Fatal("loading road graph", zap.Error(err))
	}

	store := roadgraph.NewStore(graph, roadInfo)

	httpConfig := httpapi.Config{
		Port:               viper.GetInt("API_PORT"),
		ReadTimeout:        viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:       viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:        viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout:  viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
		RateLimitRPS:       viper.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     viper.GetInt("RATE_LIMIT_BURST"),
		UseRateLimit:       true,
		VicinityCandidates: config.VicinityCandidates(),
	}

	server := httpapi.NewServer(log, store, httpConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error("httpapi server exited with error", zap.Error(err))
	}
	log.Info("httpapi server stopped")
}
