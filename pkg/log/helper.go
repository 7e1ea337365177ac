package log

import (
	stdlog "log"
)

func MustInit(dbFile string) {
	if err := Init(dbFile); err != nil {
		stdlog.Fatalf("FATAL: Failed to initialize logger: %v\n", err)
	}
}
