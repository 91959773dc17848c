// Command staticlint runs the static checks of the project: a set of go/analysis
// passes, ineffassign, nilerr, the project-specific noexit analyzer and the
// staticcheck, simple and stylecheck analyzers enabled in config.json.
//
// config.json is looked up next to the binary first, then in the working directory.
// Without it only the always-on analyzers run.
//
// Usage:
//
//	go build -o staticlint ./cmd/staticlint
//	./staticlint ./...
package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gordonklaus/ineffassign/pkg/ineffassign"
	"github.com/gostaticanalysis/nilerr"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"honnef.co/go/tools/analysis/lint"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/patric-chuzhbe/helloserver/cmd/staticlint/noexit"
)

const configFileName = `config.json`

// ConfigData lists the honnef.co/go/tools analyzers to enable, by name,
// e.g. "SA1000", "S1002", "ST1005".
type ConfigData struct {
	Staticcheck []string
	Simple      []string
	Stylecheck  []string
}

func loadConfig() (ConfigData, error) {
	var cfg ConfigData

	candidates := []string{configFileName}
	if appfile, err := os.Executable(); err == nil {
		candidates = append([]string{filepath.Join(filepath.Dir(appfile), configFileName)}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return cfg, err
		}

		err = json.Unmarshal(data, &cfg)
		return cfg, err
	}

	return cfg, nil
}

func enabled(analyzers []*lint.Analyzer, names []string) []*analysis.Analyzer {
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	var result []*analysis.Analyzer
	for _, a := range analyzers {
		if wanted[a.Analyzer.Name] {
			result = append(result, a.Analyzer)
		}
	}

	return result
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	checks := []*analysis.Analyzer{
		copylock.Analyzer,
		httpresponse.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,
		printf.Analyzer,
		structtag.Analyzer,
		unmarshal.Analyzer,
		unreachable.Analyzer,

		ineffassign.Analyzer,
		nilerr.Analyzer,

		noexit.Analyzer,
	}

	checks = append(checks, enabled(staticcheck.Analyzers, cfg.Staticcheck)...)
	checks = append(checks, enabled(simple.Analyzers, cfg.Simple)...)
	checks = append(checks, enabled(stylecheck.Analyzers, cfg.Stylecheck)...)

	multichecker.Main(checks...)
}
