package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/respkv/internal/connserver"
	"github.com/edirooss/respkv/internal/store"
)

func main() {
	port := flag.Int("port", 6379, "TCP port to listen on")
	debug := flag.Bool("debug", false, "enable development-mode (colorized, verbose) logging")
	flag.Parse()

	var logConfig zap.Config
	if *debug {
		logConfig = zap.NewDevelopmentConfig()
		logConfig.EncoderConfig.TimeKey = ""
		logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		logConfig = zap.NewProductionConfig()
	}
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	log := zap.Must(logConfig.Build())
	defer log.Sync()
	log = log.Named("main")

	st := store.New(log)
	srv := connserver.New(fmt.Sprintf(":%d", *port), st, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("exiting")
}
