package observability

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := initLogger(&buf, "kimprof")
	logger.Info().Int("bytes", 3).Msg("encoded")
	require.Contains(t, buf.String(), "app=kimprof")
	require.Contains(t, buf.String(), "bytes=3")
	require.Contains(t, buf.String(), "encoded")

	buf.Reset()
	log.Info().Msg("global")
	require.Contains(t, buf.String(), "global")
}
