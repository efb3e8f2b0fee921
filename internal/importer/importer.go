// Package importer ingests tool-generated findings from JSONL files.
package importer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/quietriot-sec/fieldcase/internal/linker"
	"github.com/quietriot-sec/fieldcase/internal/observability"
	"github.com/quietriot-sec/fieldcase/internal/store"
	"github.com/quietriot-sec/fieldcase/pkg/types"
)

// requiredFields must be present and non-empty on every imported line.
var requiredFields = []string{
	"insight_id",
	"target_context",
	"title",
	"source_tool_name",
	"category",
	"type",
	"timestamp_generated_utc",
	"timestamp_event_utc",
}

// Report summarizes one import run. Linked counts imported findings that
// gained at least one asset link, not the total number of links made.
type Report struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Linked   int `json:"linked"`
}

// Importer reads insight lines from a JSONL file into a project store.
type Importer struct {
	store *store.Store
	log   *zap.Logger
}

// New returns an importer writing into the given store.
func New(s *store.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = observability.Logger()
	}
	return &Importer{store: s, log: log}
}

// Run imports every valid line of the file at path. Malformed lines are
// skipped and counted; only an unreadable file is a terminal error. All
// accepted findings and any asset link updates are saved once at the end,
// so a run that skips lines is safe to repeat.
func (imp *Importer) Run(path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	findings := imp.store.Findings()
	assets := imp.store.Assets()
	sourceRef := filepath.Base(path)

	var report Report
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			imp.log.Warn("skipping malformed line",
				zap.String("file", sourceRef), zap.Int("line", lineNo), zap.Error(err))
			report.Skipped++
			continue
		}
		if missing := missingFields(raw); len(missing) > 0 {
			imp.log.Warn("skipping line with missing fields",
				zap.String("file", sourceRef), zap.Int("line", lineNo),
				zap.String("insight_id", rawString(raw, "insight_id")),
				zap.Strings("missing", missing))
			report.Skipped++
			continue
		}

		var finding types.Finding
		if err := json.Unmarshal([]byte(line), &finding); err != nil {
			imp.log.Warn("skipping undecodable line",
				zap.String("file", sourceRef), zap.Int("line", lineNo),
				zap.String("insight_id", rawString(raw, "insight_id")), zap.Error(err))
			report.Skipped++
			continue
		}

		now := imp.store.Now()
		if finding.SourceType == "" {
			finding.SourceType = types.SourceTypeToolOutput
		}
		if finding.Status == "" {
			finding.Status = types.FindingStatusOpen
		}
		if finding.SourceRef == "" {
			finding.SourceRef = sourceRef
		}
		finding.Tags = types.LowercaseSet(finding.Tags)
		finding.CreatedAt = now
		finding.UpdatedAt = now
		finding.Backfill(now)
		if err := finding.Validate(); err != nil {
			imp.log.Warn("skipping invalid line",
				zap.String("file", sourceRef), zap.Int("line", lineNo),
				zap.String("insight_id", finding.InsightID), zap.Error(err))
			report.Skipped++
			continue
		}

		finding.ID = imp.store.NextFindingID(findings)
		if linker.FindingToAssets(&finding, assets) > 0 {
			report.Linked++
		}
		findings = append(findings, finding)
		report.Imported++
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("reading import file: %w", err)
	}

	if report.Imported > 0 {
		if err := imp.store.SaveFindings(findings); err != nil {
			return report, err
		}
	}
	if report.Linked > 0 {
		if err := imp.store.SaveAssets(assets); err != nil {
			return report, err
		}
	}
	imp.log.Info("import finished",
		zap.String("file", sourceRef),
		zap.Int("imported", report.Imported),
		zap.Int("skipped", report.Skipped),
		zap.Int("linked", report.Linked))
	return report, nil
}

func missingFields(raw map[string]json.RawMessage) []string {
	var missing []string
	for _, field := range requiredFields {
		v, ok := raw[field]
		if !ok || string(v) == "null" || string(v) == `""` {
			missing = append(missing, field)
		}
	}
	return missing
}

func rawString(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}
