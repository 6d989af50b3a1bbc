package cmd

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	server "github.com/elevator-sim/elevator-sim/server"
	sim "github.com/elevator-sim/elevator-sim/sim"
)

// serveCmd starts the tick driver as a background loop and blocks serving
// the HTTP/WebSocket command surface — the interactive analog of `run`
// (spec §6). PORT may also come from the environment, matching spec §6's
// "Configuration environment: optional PORT (bind port)".
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the engine and serve the HTTP/WebSocket command surface",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := loadConfig(cmd)
		engine := sim.NewEngine(cfg)

		bindPort := port
		if envPort := os.Getenv("PORT"); envPort != "" {
			bindPort = envPort
		}

		mux := http.NewServeMux()
		mux.Handle("/", server.NewHTTPHandler(engine))
		mux.HandleFunc("/ws", server.HandleWS(engine))

		addr := ":" + bindPort
		logrus.Infof("serving on %s (elevators=%d floors=%d)", addr, cfg.Building.NElevators, cfg.Building.NFloors)

		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				logrus.Fatalf("http server: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh

		logrus.Info("shutting down")
		if err := engine.Stop(); err != nil {
			logrus.Warnf("stopping engine: %v", err)
		}
	},
}
