package main

import (
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"veil-go/pkg/api"
	"veil-go/pkg/config"
	"veil-go/pkg/log"

	"github.com/klauspost/compress/zstd"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log.MustInit(cfg.LogDBFile)
	defer log.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		log.Close()
		os.Exit(0)
	}()

	server := api.NewServer(api.Options{
		ListenAddr:  cfg.APIListenAddr,
		DefaultKey2: cfg.DefaultKey2,
		Compress:    cfg.Compress,
		ZstdLevel:   zstd.EncoderLevel(cfg.ZstdLevel),
	})
	server.Run()
}
