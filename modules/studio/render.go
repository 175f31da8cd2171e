package studio

import (
	"io"
	"strings"
	"text/template"
	"time"

	"veo-studio/modules/common/logger"
)

// ProgressDuration is how long the pending bar takes to fill. It is a visual
// cue only: the bridge reports no progress.
const ProgressDuration = 30 * time.Second

const progressWidth = 24

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressBar renders the fixed-duration bar for a record pending for elapsed.
func ProgressBar(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	filled := int(float64(progressWidth) * float64(elapsed) / float64(ProgressDuration))
	if filled > progressWidth {
		filled = progressWidth
	}
	frame := spinnerFrames[int(elapsed/(100*time.Millisecond))%len(spinnerFrames)]
	return frame + " [" + strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled) + "]"
}

type renderRecord struct {
	Record
	Progress string
}

type renderView struct {
	Records []renderRecord
}

var recordsTpl = template.Must(template.New("records").Funcs(template.FuncMap{
	"short": logger.Truncate,
}).Parse(`{{- if not .Records -}}
No videos yet. Submit a prompt to get started.
{{ else -}}
{{- range .Records -}}
{{- if eq .Status "pending" -}}
🎬 {{ short .Prompt 60 }}
   {{ .Progress }} generating...
{{ else if eq .Status "completed" -}}
✅ {{ short .Prompt 60 }}
   ▶ {{ short .VideoURL 96 }}
   ⬇ download: video-{{ .ID }}.mp4
{{ else -}}
❌ {{ short .Prompt 60 }}
   {{ .Error }}
{{ end -}}
{{- end -}}
{{- end -}}`))

// Render writes the records as text. Output depends only on records and now.
func Render(w io.Writer, records []Record, now time.Time) error {
	view := renderView{Records: make([]renderRecord, 0, len(records))}
	for _, rec := range records {
		rr := renderRecord{Record: rec}
		if rec.Status == StatusPending {
			rr.Progress = ProgressBar(now.Sub(rec.CreatedAt))
		}
		view.Records = append(view.Records, rr)
	}
	return recordsTpl.Execute(w, view)
}
