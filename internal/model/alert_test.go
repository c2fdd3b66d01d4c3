package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertKey(t *testing.T) {
	a := Alert{ProcessID: "1234", Timestamp: "t1"}
	assert.Equal(t, "alert-1234-t1", a.Key())

	// Same process, new timestamp: different alert.
	b := Alert{ProcessID: "1234", Timestamp: "t2"}
	assert.NotEqual(t, a.Key(), b.Key())

	// Missing fields still produce a stable key.
	assert.Equal(t, "alert--", Alert{}.Key())
}

func TestExecName(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{`C:\Windows\System32\certutil.exe`, "certutil.exe"},
		{`/usr/bin/curl`, "curl"},
		{`regsvr32.exe`, "regsvr32.exe"},
		{``, ""},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Alert{ExecutablePath: tc.path}.ExecName(), tc.path)
	}
}

func TestTitle(t *testing.T) {
	a := Alert{ExecutablePath: `C:\Windows\System32\certutil.exe`}
	assert.Equal(t, "LOLBin Alert: certutil.exe", a.Title())
}

func TestBodyTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	a := Alert{Reason: "r", CommandLine: long}
	body := a.Body()
	assert.Contains(t, body, long[:50]+"...")
	assert.NotContains(t, body, long[:51])

	// Exactly 50 characters: no marker.
	exact := strings.Repeat("y", 50)
	body = Alert{Reason: "r", CommandLine: exact}.Body()
	assert.Contains(t, body, exact)
	assert.NotContains(t, body, "...")

	short := "certutil -urlcache"
	body = Alert{Reason: "r", CommandLine: short}.Body()
	assert.Contains(t, body, short)
	assert.NotContains(t, body, "...")
}

func TestBodyDefaultReason(t *testing.T) {
	a := Alert{ExecutablePath: `C:\Windows\System32\mshta.exe`, CommandLine: "mshta http://x"}
	assert.Contains(t, a.Body(), "Suspicious mshta.exe execution detected")

	a.Reason = "Suspicious mshta execution"
	assert.True(t, strings.HasPrefix(a.Body(), "Suspicious mshta execution\n\nCommand: "))
}

func TestUnmarshalLenient(t *testing.T) {
	// String process_id, all fields present.
	var a Alert
	require.NoError(t, json.Unmarshal([]byte(
		`{"process_id":"1234","timestamp":"t1","executable_path":"C:\\Windows\\System32\\certutil.exe","command_line":"certutil -urlcache","reason":"Suspicious certutil execution"}`,
	), &a))
	assert.Equal(t, "1234", a.ProcessID)
	assert.Equal(t, "certutil.exe", a.ExecName())

	// Numeric process_id (older agents).
	var b Alert
	require.NoError(t, json.Unmarshal([]byte(`{"process_id":10042,"timestamp":"t2"}`), &b))
	assert.Equal(t, "10042", b.ProcessID)

	// PIDs above 2^53 keep their exact digits.
	var d Alert
	require.NoError(t, json.Unmarshal([]byte(`{"process_id":9007199254740993,"timestamp":"t3"}`), &d))
	assert.Equal(t, "9007199254740993", d.ProcessID)

	// Missing / odd fields default to empty instead of failing.
	var c Alert
	require.NoError(t, json.Unmarshal([]byte(`{"process_id":{"bad":"shape"}}`), &c))
	assert.Equal(t, "", c.ProcessID)
	assert.Equal(t, "", c.Timestamp)
	assert.Equal(t, "", c.CommandLine)
}
