package server

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/NVIDIA/arch-stack/pkg/march"
)

// Config holds server configuration
type Config struct {
	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Logging
	LogLevel string
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string                 `json:"code" yaml:"code"`
	Message   string                 `json:"message" yaml:"message"`
	Details   map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string                 `json:"requestId" yaml:"requestId"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
	Retryable bool                   `json:"retryable" yaml:"retryable"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string    `json:"status" yaml:"status"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Reason    string    `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Target is the wire representation of one graph node.
type Target struct {
	Name       string   `json:"name" yaml:"name"`
	Vendor     string   `json:"vendor" yaml:"vendor"`
	Family     string   `json:"family" yaml:"family"`
	Generation int      `json:"generation,omitempty" yaml:"generation,omitempty"`
	Features   []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// DetectResponse is the body of GET /v1/detect.
type DetectResponse struct {
	Target    Target           `json:"target" yaml:"target"`
	Signature *march.Signature `json:"signature,omitempty" yaml:"signature,omitempty"`
}

// CompareResponse is the body of GET /v1/compare.
type CompareResponse struct {
	A          string         `json:"a" yaml:"a"`
	B          string         `json:"b" yaml:"b"`
	Ordering   march.Ordering `json:"ordering" yaml:"ordering"`
	Compatible bool           `json:"compatible" yaml:"compatible"`
}

// FlagsResponse is the body of GET /v1/flags.
type FlagsResponse struct {
	Target   string `json:"target" yaml:"target"`
	Compiler string `json:"compiler" yaml:"compiler"`
	Version  string `json:"version" yaml:"version"`
	Flags    string `json:"flags" yaml:"flags"`
}

// TargetsResponse is the body of GET /v1/targets.
type TargetsResponse struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

func targetFromNode(node *march.Microarchitecture, withFeatures bool) Target {
	t := Target{
		Name:       node.Name,
		Vendor:     node.Vendor,
		Family:     node.Family().Name,
		Generation: node.Generation,
	}
	if withFeatures {
		t.Features = node.Features.Sorted()
	}
	return t
}
