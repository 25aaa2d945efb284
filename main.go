package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"SketchBoard3D/internal/config"
	"SketchBoard3D/internal/extrude"
	snet "SketchBoard3D/internal/net"
	"SketchBoard3D/internal/recognize"
	"SketchBoard3D/internal/service"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `SketchBoard3D recognition service

Usage:
  sketchboard3d [options]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  SKETCH3D_ADDR, SKETCH3D_MDNS, SKETCH3D_SEED, SKETCH3D_MAX_BODY override the flags above.

Endpoints:
  POST %s  {strokes?, recognizedShapes?} -> {shapes}
  GET  %s             websocket, one message per invocation
  GET  %s
`, snet.VectorizePath, snet.LivePath, snet.HealthPath)
	}
	flag.Parse()

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Verbose {
		recognize.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	svc := service.New(extrude.NewRand(cfg.JitterSeed()),
		recognize.WithClusterDistance(cfg.ClusterDistance),
		recognize.WithTolerance(cfg.Tolerance))
	server := snet.NewServer(svc, cfg.MaxBodyBytes)

	port, err := snet.PortOf(cfg.Addr)
	if err != nil {
		return err
	}

	if cfg.MDNS {
		adv, err := snet.Advertise(cfg.Instance, port)
		if err != nil {
			log.Printf("[MDNS] Advertising disabled: %v", err)
		} else {
			defer adv.Shutdown()
		}
	}

	log.Printf("Share link: %s", snet.ShareLink(snet.OutgoingIP(), port))
	return server.ListenAndServe(ctx, cfg.Addr)
}
