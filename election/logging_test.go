package election_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ostcar/stvtab/election"
)

func TestZerologSinkEmitsDebugLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	sink := election.ZerologSink(logger, "President")
	sink(1, "candidate %s eliminated with score %s", "D", "0")

	out := buf.String()
	if !strings.Contains(out, "President") {
		t.Fatalf("log output missing race id: %s", out)
	}
	if !strings.Contains(out, "eliminated") {
		t.Fatalf("log output missing message: %s", out)
	}
}
