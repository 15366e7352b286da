package driver

import (
	"encoding/json"
	"fmt"

	"logdoc/internal/diag"
	"logdoc/internal/observ"
)

// reportTimings attaches the phase report as an OBS6001 notice whose note is
// the report in JSON, so `--diagnostics-format json` carries it to tooling.
func reportTimings(r diag.Reporter, root string, rep observ.Report) {
	data, err := json.Marshal(rep)
	if err != nil {
		return
	}
	d := diag.NewPathInfo(diag.ObsTimings, root, fmt.Sprintf("timings: %d phases, total %.2f ms", len(rep.Phases), rep.TotalMS))
	d.Notes = []diag.Note{{Msg: string(data)}}
	r.Report(d)
}
