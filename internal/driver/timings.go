package driver

import (
	"encoding/json"
	"fmt"

	"arttrace/internal/diag"
	"arttrace/internal/observ"
	"arttrace/internal/source"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// TimingDiagnostic wraps a timer report into an informational diagnostic
// whose note carries the report as JSON.
func TimingDiagnostic(kind, path string, report observ.Report) (diag.Diagnostic, error) {
	if kind == "" {
		kind = "pipeline"
	}
	payload := timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return diag.Diagnostic{}, fmt.Errorf("encode timings: %w", err)
	}

	msg := fmt.Sprintf("timings (%s): total %.2f ms", kind, report.TotalMS)
	if path != "" {
		msg = fmt.Sprintf("%s, %s", msg, path)
	}
	return diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data)), nil
}
