package worker

import (
	"log"
	"os"
)

var debugEnabled = os.Getenv("POSTWRITER_DEBUG") != ""

func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf(format, args...)
	}
}
