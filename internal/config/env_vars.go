package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar    = "PORT"
	appNameEnvVar = "APP_NAME"
	envEnvVar     = "ENV"

	// EnvProduction disables stack traces in error bodies.
	EnvProduction = "PRODUCTION"
	EnvDev        = "DEV"
)

type EnvVars struct {
	Port    string `validate:"required"`
	AppName string
	Env     string `validate:"required"`
}

var _ EnvConfig = EnvVars{}

func loadEnvVars() EnvVars {
	return EnvVars{
		Port:    GetEnv(portEnvVar, "8787"),
		AppName: GetEnv(appNameEnvVar, "CyberAcme Auth"),
		Env:     strings.ToUpper(GetEnv(envEnvVar, EnvDev)),
	}
}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

// IsProduction also accepts the short form "PROD".
func (e EnvVars) IsProduction() bool {
	return e.Env == EnvProduction || e.Env == "PROD"
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(envVar string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(envVar)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getEnvBool(envVar string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(envVar)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvSeconds(envVar string, defaultValue time.Duration) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(envVar)); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return defaultValue
}
