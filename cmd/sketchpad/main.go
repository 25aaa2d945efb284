// Command sketchpad is a desktop drawing pad that converts sketches into extrusion specs,
// either in-process or through a recognition service on the network.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"SketchBoard3D/internal/config"
	"SketchBoard3D/internal/extrude"
	snet "SketchBoard3D/internal/net"
	"SketchBoard3D/internal/recognize"
	"SketchBoard3D/internal/service"
	"SketchBoard3D/internal/ui"
)

func main() {
	var (
		discover = flag.Bool("discover", false, "find a recognition service over mDNS")
		live     = flag.Bool("live", false, "convert over the websocket endpoint instead of HTTP")
		timeout  = flag.Duration("timeout", 3*time.Second, "mDNS discovery timeout")
	)
	cfg := config.Default()
	flag.Float64Var(&cfg.ClusterDistance, "cluster", cfg.ClusterDistance, "stroke clustering distance for local conversion")
	flag.Float64Var(&cfg.Tolerance, "tolerance", cfg.Tolerance, "simplification tolerance for local conversion")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "height jitter seed for local conversion (0 = time based)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage:
  sketchpad [options] [%s<ip>:<port> | host:port | http://host:port]

With no address and no -discover, strokes are converted in-process.

Options:
`, config.CustomURLScheme)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	target := flag.Arg(0)
	if target == "" && *discover {
		var err error
		log.Printf("[MDNS] Looking for %s...", snet.ServiceType)
		target, err = snet.Discover(context.Background(), *timeout)
		if err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}
		log.Printf("[MDNS] Found service at %s", target)
	}

	conv, err := converter(cfg, target, *live)
	if err != nil {
		log.Fatalf("Invalid service address: %v", err)
	}
	if c, ok := conv.(*ui.LiveConverter); ok {
		defer c.Close()
	}
	ui.Run(conv)
}

func converter(cfg config.Config, target string, live bool) (ui.Converter, error) {
	switch {
	case target == "":
		svc := service.New(extrude.NewRand(cfg.JitterSeed()),
			recognize.WithClusterDistance(cfg.ClusterDistance),
			recognize.WithTolerance(cfg.Tolerance))
		return ui.LocalConverter{Service: svc}, nil
	case live:
		if _, err := snet.BaseURL(target); err != nil {
			return nil, err
		}
		return &ui.LiveConverter{Target: target}, nil
	default:
		client, err := snet.NewClient(target)
		if err != nil {
			return nil, err
		}
		return ui.RemoteConverter{Client: client}, nil
	}
}
