package ui

import (
	"os"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	// Status lines clear through tea.Tick; keep drained command chains fast.
	statusTTL = time.Millisecond
	os.Exit(m.Run())
}
