package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type envType interface {
	string | int | bool | float64 | time.Duration
}

func parseEnv[T envType](envVarName, envValue string) (T, error) {
	var value T
	var err error
	var parsed any

	switch any(value).(type) {
	case string:
		parsed = envValue
	case int:
		parsed, err = strconv.Atoi(envValue)
	case bool:
		parsed, err = strconv.ParseBool(envValue)
	case float64:
		parsed, err = strconv.ParseFloat(envValue, 64)
	case time.Duration:
		parsed, err = time.ParseDuration(envValue)
	default:
		return value, fmt.Errorf("unsupported type %T for environment variable %s", value, envVarName)
	}
	if err != nil {
		return value, fmt.Errorf("environment variable %s is not valid: '%s' cannot be parsed as %T", envVarName, envValue, value)
	}
	return parsed.(T), nil
}

// GetEnv reads an environment variable, falling back to the default value if unset or empty.
// Panics if the value cannot be parsed to the type of the default value.
func GetEnv[T envType](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		panic(err)
	}
	return value
}

func GetRequiredEnv[T envType](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		log.Fatalf("%s environment variable is required", envVarName)
	}
	value, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		log.Fatal(err)
	}
	return value
}
