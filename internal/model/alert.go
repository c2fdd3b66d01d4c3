package model

import (
	"encoding/json"
	"strings"
)

// keyPrefix namespaces alert identities so they are recognizable in logs.
const keyPrefix = "alert-"

// cmdPreviewLen caps how much of the command line appears in a notification.
const cmdPreviewLen = 50

// Alert is one suspicious process execution reported by the backend.
// Fields mirror the agent's wire format; anything missing decodes to "".
type Alert struct {
	ProcessID      string `json:"process_id"`
	ExecutablePath string `json:"executable_path"`
	CommandLine    string `json:"command_line"`
	Reason         string `json:"reason,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
}

// UnmarshalJSON tolerates a numeric process_id (older agents emit a JSON
// number) and ignores unexpected field shapes instead of failing the record.
func (a *Alert) UnmarshalJSON(b []byte) error {
	var w struct {
		ProcessID      json.RawMessage `json:"process_id"`
		ExecutablePath string          `json:"executable_path"`
		CommandLine    string          `json:"command_line"`
		Reason         string          `json:"reason"`
		Timestamp      string          `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if len(w.ProcessID) > 0 {
		if w.ProcessID[0] == '"' {
			var s string
			if err := json.Unmarshal(w.ProcessID, &s); err == nil {
				a.ProcessID = s
			}
		} else {
			// Keep the number's own digits; going through a float would
			// corrupt PIDs above 2^53.
			var n json.Number
			if err := json.Unmarshal(w.ProcessID, &n); err == nil {
				a.ProcessID = n.String()
			}
		}
	}
	a.ExecutablePath = w.ExecutablePath
	a.CommandLine = w.CommandLine
	a.Reason = w.Reason
	a.Timestamp = w.Timestamp
	return nil
}

// Key is the alert's dedup identity. Same process_id and timestamp means the
// same alert; a new timestamp for the same process is a new alert.
func (a Alert) Key() string {
	return keyPrefix + a.ProcessID + "-" + a.Timestamp
}

// ExecName returns the executable's base name. Paths come from Windows
// agents, so both separators are handled.
func (a Alert) ExecName() string {
	p := a.ExecutablePath
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		p = p[i+1:]
	}
	return p
}

// Title is the notification headline for this alert.
func (a Alert) Title() string {
	return "LOLBin Alert: " + a.ExecName()
}

// Body is the notification text: the detection reason plus a truncated
// command-line preview.
func (a Alert) Body() string {
	reason := a.Reason
	if reason == "" {
		reason = "Suspicious " + a.ExecName() + " execution detected"
	}
	cmd := a.CommandLine
	if r := []rune(cmd); len(r) > cmdPreviewLen {
		cmd = string(r[:cmdPreviewLen]) + "..."
	}
	return reason + "\n\nCommand: " + cmd
}
