package redis

import (
	"testing"
	"time"
)

func TestConfig_Options(t *testing.T) {
	cfg := Config{Addr: "cache:6379", Password: "hunter2", DB: 2, Timeout: time.Second}

	opts := cfg.options()
	if opts.Addr != "cache:6379" {
		t.Errorf("expected addr cache:6379, got %s", opts.Addr)
	}
	if opts.Password != "hunter2" {
		t.Errorf("password not carried over")
	}
	if opts.DB != 2 {
		t.Errorf("expected db 2, got %d", opts.DB)
	}
	if opts.DialTimeout != time.Second || opts.ReadTimeout != time.Second {
		t.Errorf("timeouts not applied: dial=%v read=%v", opts.DialTimeout, opts.ReadTimeout)
	}
}

func TestConfig_Options_DefaultTimeout(t *testing.T) {
	opts := Config{Addr: "localhost:6379"}.options()

	if opts.DialTimeout != defaultTimeout {
		t.Errorf("expected default dial timeout %v, got %v", defaultTimeout, opts.DialTimeout)
	}
}
