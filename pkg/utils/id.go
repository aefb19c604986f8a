package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a unique identifier for one tuning run, with a
// timestamp prefix for readability in log file names.
func GenerateRunID() string {
	return fmt.Sprintf("run-%s-%s", time.Now().Format("20060102-150405"), uuid.NewString())
}
