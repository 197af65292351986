package computer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepsec/pkg/manager"
)

// fakeManager records action calls and log lines.
type fakeManager struct {
	logs    []string
	actions []string
	hostIDs []int64
	err     error
}

func (f *fakeManager) GetRequestFormat(api, call string, useCookieAuth bool) *manager.Request {
	return &manager.Request{API: api, Call: call, UseCookieAuth: useCookieAuth}
}

func (f *fakeManager) Do(req *manager.Request) (*manager.Response, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeManager) Log(format string, args ...any) {
	f.logs = append(f.logs, fmt.Sprintf(format, args...))
}

func (f *fakeManager) record(action string, hostIDs ...int64) error {
	f.actions = append(f.actions, action)
	f.hostIDs = append(f.hostIDs, hostIDs...)
	return f.err
}

func (f *fakeManager) RequestEventsFromComputer(hostID int64) error {
	return f.record("request_events", hostID)
}

func (f *fakeManager) ClearWarningsAndErrorsFromComputers(hostIDs ...int64) error {
	return f.record("clear_warnings", hostIDs...)
}

func (f *fakeManager) ScanComputersForMalware(hostIDs ...int64) error {
	return f.record("scan_malware", hostIDs...)
}

func (f *fakeManager) ScanComputersForIntegrity(hostIDs ...int64) error {
	return f.record("scan_integrity", hostIDs...)
}

func (f *fakeManager) ScanComputersForRecommendations(hostIDs ...int64) error {
	return f.record("scan_recommendations", hostIDs...)
}

func TestNewWithoutManager(t *testing.T) {
	c := New(map[string]any{
		"ID":             7,
		"name":           "h1",
		"hostInterfaces": []any{map[string]any{}, map[string]any{}},
	}, nil)

	assert.Equal(t, "h1", c.Hostname)
	assert.Equal(t, int64(7), c.ID())

	n, ok := c.InterfaceCount()
	require.True(t, ok)
	assert.Equal(t, 2, n)

	// Without a manager every action is a silent no-op.
	assert.NoError(t, c.SendEventsToManager())
	assert.NoError(t, c.ClearWarningsAndErrors())
	assert.NoError(t, c.ScanForMalware())
	assert.NoError(t, c.ScanForIntegrity())
	assert.NoError(t, c.ScanForRecommendations())
}

func TestNewMissingInterfaces(t *testing.T) {
	c := New(map[string]any{
		"ID":   3,
		"name": "bare",
	}, nil)

	_, ok := c.InterfaceCount()
	assert.False(t, ok)
}

func TestNewRenamesKnownFields(t *testing.T) {
	c := New(map[string]any{
		"ID":                       12,
		"name":                     "web-01",
		"displayName":              "Web server",
		"platform":                 "Ubuntu 22.04",
		"securityProfileID":        float64(44),
		"securityProfileName":      "Web Policy",
		"hostLight":                "GREEN",
		"lastIPUsed":               "10.0.0.5",
		"overallAntiMalwareStatus": "On, Real Time",
		"overallStatus":            "Managed",
		"hostInterfaces":           []any{map[string]any{"IP": "10.0.0.5"}},
	}, nil)

	assert.Equal(t, "web-01", c.Hostname)
	assert.Equal(t, "Web server", c.DisplayName)
	assert.Equal(t, "Ubuntu 22.04", c.Platform)
	assert.Equal(t, int64(44), c.PolicyID)
	assert.Equal(t, "Web Policy", c.PolicyName)
	assert.Equal(t, "GREEN", c.StatusLight)
	assert.Equal(t, "10.0.0.5", c.LastIP)
	assert.Equal(t, "On, Real Time", c.ModuleStatusAntiMalware)
	assert.Equal(t, "Managed", c.OverallStatus)
}

func TestNewLogsSkippedFields(t *testing.T) {
	fm := &fakeManager{}
	New(map[string]any{
		"ID":   5,
		"name": "sparse",
	}, fm)

	// Every absent source key is logged, construction never fails.
	require.NotEmpty(t, fm.logs)
	assert.Contains(t, fm.logs[0], "sparse")

	found := false
	for _, line := range fm.logs {
		if strings.Contains(line, "number_of_interfaces") {
			found = true
		}
	}
	assert.True(t, found, "missing hostInterfaces should be logged")
}

func TestActionsDelegateByHostID(t *testing.T) {
	fm := &fakeManager{}
	c := New(map[string]any{
		"ID":             7,
		"name":           "h1",
		"hostInterfaces": []any{},
	}, fm)

	require.NoError(t, c.SendEventsToManager())
	require.NoError(t, c.ClearWarningsAndErrors())
	require.NoError(t, c.ScanForMalware())
	require.NoError(t, c.ScanForIntegrity())
	require.NoError(t, c.ScanForRecommendations())

	assert.Equal(t, []string{
		"request_events",
		"clear_warnings",
		"scan_malware",
		"scan_integrity",
		"scan_recommendations",
	}, fm.actions)
	assert.Equal(t, []int64{7, 7, 7, 7, 7}, fm.hostIDs)
}

func TestDetails(t *testing.T) {
	c := New(map[string]any{
		"ID":       1,
		"name":     "h1",
		"platform": "Windows Server 2019",
	}, nil)

	details := c.Details()
	assert.Contains(t, details, "hostname\th1")
	assert.Contains(t, details, "platform\tWindows Server 2019")
	assert.NotContains(t, details, "cloud_type")
}
