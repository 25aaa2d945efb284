package config

import (
	"flag"
	"testing"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Addr != ":8888" || c.ClusterDistance != 20 || c.Tolerance != 5 {
		t.Errorf("unexpected defaults %+v", c)
	}
}

func TestFlagsOverrideDefaults(t *testing.T) {
	c := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse([]string{"-addr", "127.0.0.1:9000", "-cluster", "35", "-mdns=false", "-seed", "9"}); err != nil {
		t.Fatal(err)
	}
	if c.Addr != "127.0.0.1:9000" || c.ClusterDistance != 35 || c.MDNS || c.Seed != 9 {
		t.Errorf("flags not applied: %+v", c)
	}
	if c.JitterSeed() != 9 {
		t.Errorf("JitterSeed = %d, want 9", c.JitterSeed())
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(env(map[string]string{
		"SKETCH3D_ADDR":     ":7000",
		"SKETCH3D_MDNS":     "false",
		"SKETCH3D_SEED":     "12",
		"SKETCH3D_MAX_BODY": "1024",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Addr != ":7000" || c.MDNS || c.Seed != 12 || c.MaxBodyBytes != 1024 {
		t.Errorf("env not applied: %+v", c)
	}

	if err := c.ApplyEnv(env(map[string]string{"SKETCH3D_SEED": "minus one"})); err == nil {
		t.Errorf("ApplyEnv accepted a malformed seed")
	}
}

func TestValidate(t *testing.T) {
	for _, mutate := range []func(*Config){
		func(c *Config) { c.ClusterDistance = 0 },
		func(c *Config) { c.Tolerance = -1 },
		func(c *Config) { c.MaxBodyBytes = 0 },
	} {
		c := Default()
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("Validate accepted %+v", c)
		}
	}
}
