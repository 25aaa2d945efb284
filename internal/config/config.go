// Package config holds the runtime settings shared by the service and its front ends.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"SketchBoard3D/internal/geometry"
	"SketchBoard3D/internal/state"
)

const (
	// CustomURLScheme prefixes share links such as sketch3d://192.168.1.4:8888.
	CustomURLScheme = "sketch3d://"
	DefaultPort     = 8888
)

// Config is the service configuration.
type Config struct {
	Addr            string
	MDNS            bool
	Instance        string
	ClusterDistance float64
	Tolerance       float64
	Seed            uint64 // 0 seeds from the clock
	MaxBodyBytes    int64
	Verbose         bool
}

// Default returns the configuration used when no flags or environment are set.
func Default() Config {
	host, _ := os.Hostname()
	return Config{
		Addr:            fmt.Sprintf(":%d", DefaultPort),
		MDNS:            true,
		Instance:        host,
		ClusterDistance: state.DefaultClusterDistance,
		Tolerance:       geometry.DefaultTolerance,
		MaxBodyBytes:    4 << 20,
	}
}

// RegisterFlags binds c's fields to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Addr, "addr", c.Addr, "listen address")
	fs.BoolVar(&c.MDNS, "mdns", c.MDNS, "advertise the service over mDNS")
	fs.StringVar(&c.Instance, "instance", c.Instance, "mDNS instance name")
	fs.Float64Var(&c.ClusterDistance, "cluster", c.ClusterDistance, "stroke clustering distance in pixels")
	fs.Float64Var(&c.Tolerance, "tolerance", c.Tolerance, "path simplification tolerance in pixels")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "height jitter seed (0 = time based)")
	fs.Int64Var(&c.MaxBodyBytes, "max-body", c.MaxBodyBytes, "maximum request body size in bytes")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
}

// ApplyEnv overrides c from SKETCH3D_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("SKETCH3D_ADDR"); v != "" {
		c.Addr = v
	}
	if v := getenv("SKETCH3D_MDNS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SKETCH3D_MDNS: %w", err)
		}
		c.MDNS = b
	}
	if v := getenv("SKETCH3D_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SKETCH3D_SEED: %w", err)
		}
		c.Seed = n
	}
	if v := getenv("SKETCH3D_MAX_BODY"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SKETCH3D_MAX_BODY: %w", err)
		}
		c.MaxBodyBytes = n
	}
	return nil
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	if c.ClusterDistance <= 0 {
		return fmt.Errorf("cluster distance must be positive, got %v", c.ClusterDistance)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive, got %v", c.Tolerance)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// JitterSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c Config) JitterSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
