package config

import (
	"path/filepath"
	"runtime"

	sharedconfig "github.com/draftea/order-saga/shared/config"
	"github.com/pkg/errors"
)

const ServiceName = "payment-service"

type Config = sharedconfig.Config

// ReadConfig loads the payment service configuration. Environment variables
// use the PAYMENT_ prefix, e.g. PAYMENT_DATABASE_HOST.
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("unable to get current file")
	}

	return sharedconfig.Read(ServiceName, "PAYMENT", filepath.Dir(filename))
}
