package api

import "time"

type Configuration struct {
	Env     string
	AppName string
	Port    string
	// Frontend origin allowed by CORS
	AppUrl              string
	JwtSigningKey       string
	SegmentWriteKey     string
	MaxBodySizeBytes    int64
	EnablePrometheus    bool
	DefaultTimeout      time.Duration
	PlaygroundTimeout   time.Duration
	ShutdownGracePeriod time.Duration
}

func (conf Configuration) IsDevelopment() bool {
	return conf.Env == "development"
}
