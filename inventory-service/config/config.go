package config

import (
	"path/filepath"
	"runtime"

	sharedconfig "github.com/draftea/order-saga/shared/config"
	"github.com/pkg/errors"
)

const ServiceName = "inventory-service"

type Config = sharedconfig.Config

// ReadConfig loads the inventory service configuration. Environment
// variables use the INVENTORY_ prefix, e.g. INVENTORY_DATABASE_HOST.
func ReadConfig() (*Config, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return nil, errors.New("unable to get current file")
	}

	return sharedconfig.Read(ServiceName, "INVENTORY", filepath.Dir(filename))
}
