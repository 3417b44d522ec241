package handlers

import (
	"os"
	"testing"

	"github.com/liftwerk/zeiterfassung-api/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup("test")
	os.Exit(m.Run())
}
