// Command rampart scores text from the command line or stdin and prints
// the JSON verdict. It is a thin consumer of the analyzer facade; all
// scoring logic lives in the library packages.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/TryMightyAI/rampart/pkg/analyzer"
	"github.com/TryMightyAI/rampart/pkg/config"
	"github.com/TryMightyAI/rampart/pkg/engine"
)

const Version = "0.1.0"

func main() {
	profile := flag.String("profile", config.GetEnv("RAMPART_PROFILE", "balanced"), "tuning profile: turbo, fast, balanced, large")
	lines := flag.Bool("lines", false, "score each stdin line separately instead of the whole input")
	pretty := flag.Bool("pretty", false, "indent the JSON output")
	quiet := flag.Bool("quiet", false, "suppress startup capability lines")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("rampart %s\n", Version)
		return
	}

	if *quiet {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.ProfileConfig(*profile)
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: %v", err)
	}
	cfg.MustValidate()

	a, err := analyzer.New(cfg)
	if err != nil {
		log.Fatalf("[STARTUP] FATAL: failed to build analyzer: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}

	// Text from args wins; otherwise read stdin.
	if flag.NArg() > 0 {
		emit(enc, a.AnalyzeText(ctx, strings.Join(flag.Args(), " ")))
		return
	}

	if *lines {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			emit(enc, a.AnalyzeText(ctx, scanner.Text()))
		}
		if err := scanner.Err(); err != nil {
			log.Fatalf("[ERROR] reading stdin: %v", err)
		}
		return
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("[ERROR] reading stdin: %v", err)
	}
	emit(enc, a.AnalyzeText(ctx, string(data)))
}

func emit(enc *json.Encoder, result engine.AnalysisResult) {
	if err := enc.Encode(result); err != nil {
		log.Fatalf("[ERROR] encoding result: %v", err)
	}
}
