package config

import (
	"path/filepath"
	"runtime"

	sharedconfig "github.com/draftea/order-saga/shared/config"
	"github.com/pkg/errors"
)

const ServiceName = "orchestrator-service"

type Config = sharedconfig.Config

// ReadConfig loads the orchestrator configuration. Environment variables use
// the ORCHESTRATOR_ prefix, e.g. ORCHESTRATOR_AWS_SQS_QUEUE_URL.
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("unable to get current file")
	}

	return sharedconfig.Read(ServiceName, "ORCHESTRATOR", filepath.Dir(filename))
}
