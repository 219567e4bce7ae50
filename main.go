package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"
)

var MANAGER *RoutingManager

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	config := ReadConfig("./config.yaml")
	MANAGER = NewRoutingManager(config)

	app := http.NewServeMux()
	MapPost(app, "/v1/routing", HandleRoutingRequest)
	MapPost(app, "/v1/routing/draw/create", HandleCreateContextRequest)
	MapPost(app, "/v1/routing/draw/step", HandleRoutingStepRequest)
	MapPost(app, "/v1/matrix", HandleMatrixRequest)
	MapPost(app, "/v1/isochrone", HandleIsochroneRequest)

	slog.Info("Listening on " + config.Server.Addr)
	if err := http.ListenAndServe(config.Server.Addr, app); err != nil {
		slog.Error("server stopped: " + err.Error())
	}
}
