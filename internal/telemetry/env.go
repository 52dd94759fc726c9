package telemetry

import (
	"fmt"
	"os"
)

const honeycombEndpoint = "https://api.honeycomb.io"

// ConfigureEnv sets the OTEL_* exporter variables from our own
// HONEYCOMB_SKIRMISH_* variables, usually loaded from .env. The .env file may
// hold an unexpanded variable reference in the headers, so they are always
// rebuilt here.
func ConfigureEnv() {
	for k, v := range honeycombEnv(os.Getenv) {
		os.Setenv(k, v)
	}
}

func honeycombEnv(getenv func(string) string) map[string]string {
	env := map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": honeycombEndpoint}

	apiKey := getenv("HONEYCOMB_SKIRMISH_API_KEY")
	dataset := getenv("HONEYCOMB_SKIRMISH_DATASET")
	if dataset == "" {
		dataset = serviceName
	}
	if apiKey != "" {
		env["OTEL_EXPORTER_OTLP_HEADERS"] = fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset)
	}
	return env
}
