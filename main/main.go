// Command main profiles the KIM codec: it transcodes a fixed corpus in a
// loop, checks every round trip and writes a heap profile.
package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rawbytedev/kim"
	"github.com/rawbytedev/kim/internal/observability"
	"github.com/rawbytedev/kim/pkg/compactwire"
)

var corpus = []string{
	"cat",
	"Straße",
	"snowman ☃ and recycling ♲",
	"𓂀𓃠 hieroglyphs",
	strings.Repeat("mixed ascii, ß, ☃ and 𓂀 ", 64),
}

func main() {
	n := flag.Int("n", 10000, "iterations over the corpus")
	profile := flag.String("profile", "mem.prof", "heap profile output path")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address while running")
	hold := flag.Duration("hold", 0, "keep the pprof server up this long after the run")
	compress := flag.Bool("zstd", false, "also round trip zstd data frames")
	flag.Parse()

	logger := observability.InitLogger("kimprof")

	if *pprofAddr != "" {
		go func() {
			logger.Info().Str("addr", *pprofAddr).Msg("pprof listening")
			if err := http.ListenAndServe(*pprofAddr, nil); err != nil {
				logger.Error().Err(err).Msg("pprof server stopped")
			}
		}()
	}

	f, err := os.Create(*profile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *profile).Msg("create profile")
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	enc := kim.NewEncoder()
	dec := kim.NewDecoder()
	frames := &compactwire.DataFrame{Opts: compactwire.Options{Compress: *compress}}
	var kimBytes, utf8Bytes int
	start := time.Now()
	for i := 0; i < *n; i++ {
		for _, s := range corpus {
			b, err := enc.Encode(s)
			if err != nil {
				logger.Fatal().Err(err).Msg("encode")
			}
			text, err := dec.Decode(b)
			if err != nil || text != s {
				logger.Fatal().Err(err).Str("want", s).Str("got", text).Msg("round trip")
			}
			if i == 0 {
				kimBytes += len(b)
				utf8Bytes += len(s)
				if err := checkFrame(frames, s); err != nil {
					logger.Fatal().Err(err).Msg("frame round trip")
				}
			}
		}
	}
	logger.Info().
		Int("iterations", *n).
		Int("utf8_bytes", utf8Bytes).
		Int("kim_bytes", kimBytes).
		Dur("elapsed", time.Since(start)).
		Msg("corpus done")

	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Fatal().Err(err).Msg("write heap profile")
	}
	logger.Info().Str("path", *profile).Msg("heap profile written")
	if *pprofAddr != "" && *hold > 0 {
		time.Sleep(*hold)
	}
}

func checkFrame(d *compactwire.DataFrame, s string) error {
	k, err := kim.FromText(s)
	if err != nil {
		return err
	}
	frame, err := d.EncodeDataFrame(k)
	if err != nil {
		return err
	}
	_, err = d.DecodeDataFrame(frame)
	return err
}
