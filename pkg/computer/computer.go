// Package computer wraps a host's detail payload from the Deep Security
// Manager in a record with normalized property names, and relays per-host
// action requests back to the manager.
package computer

import (
	"fmt"
	"sort"
	"strings"

	"deepsec/pkg/manager"
)

// Computer is a host-detail record. It is built once from the raw payload
// and read thereafter; the only mutation is the rename pass at construction.
// Data keeps the raw payload for fields the rename table does not cover.
type Computer struct {
	Data map[string]any

	Hostname            string
	Description         string
	DisplayName         string
	Platform            string
	PolicyID            int64
	PolicyName          string
	CloudImageID        string
	CloudInstanceID     string
	CloudSecurityPolicy any
	CloudType           string
	StatusLight         string
	LastIP              string

	ModuleStatusAntiMalware         string
	ModuleStatusIPS                 string
	ModuleStatusFirewall            string
	ModuleStatusIntegrityMonitoring string
	ModuleStatusLogInspection       string
	ModuleStatusWebReputation       string
	OverallStatus                   string

	interfaces *int

	mgr manager.Manager
}

// hostDetailFields is the fixed rename table from raw host-detail keys to
// normalized properties, iterated once at construction.
var hostDetailFields = []struct {
	source string
	name   string
	assign func(c *Computer, v any)
}{
	{"name", "hostname", func(c *Computer, v any) { c.Hostname = asString(v) }},
	{"description", "description", func(c *Computer, v any) { c.Description = asString(v) }},
	{"displayName", "display_name", func(c *Computer, v any) { c.DisplayName = asString(v) }},
	{"platform", "platform", func(c *Computer, v any) { c.Platform = asString(v) }},
	{"securityProfileID", "policy_id", func(c *Computer, v any) { c.PolicyID, _ = asInt64(v) }},
	{"securityProfileName", "policy_name", func(c *Computer, v any) { c.PolicyName = asString(v) }},
	{"cloudObjectImageId", "cloud_image_id", func(c *Computer, v any) { c.CloudImageID = asString(v) }},
	{"cloudObjectInstanceId", "cloud_instance_id", func(c *Computer, v any) { c.CloudInstanceID = asString(v) }},
	{"cloudObjectSecurityGroupIds", "cloud_security_policy", func(c *Computer, v any) { c.CloudSecurityPolicy = v }},
	{"cloudObjectType", "cloud_type", func(c *Computer, v any) { c.CloudType = asString(v) }},
	{"hostLight", "status_light", func(c *Computer, v any) { c.StatusLight = asString(v) }},
	{"lastIPUsed", "last_ip", func(c *Computer, v any) { c.LastIP = asString(v) }},
	{"overallAntiMalwareStatus", "module_status_anti_malware", func(c *Computer, v any) { c.ModuleStatusAntiMalware = asString(v) }},
	{"overallDpiStatus", "module_status_ips", func(c *Computer, v any) { c.ModuleStatusIPS = asString(v) }},
	{"overallFirewallStatus", "module_status_firewall", func(c *Computer, v any) { c.ModuleStatusFirewall = asString(v) }},
	{"overallIntegrityMonitoringStatus", "module_status_integrity_monitoring", func(c *Computer, v any) { c.ModuleStatusIntegrityMonitoring = asString(v) }},
	{"overallLogInspectionStatus", "module_status_log_inspection", func(c *Computer, v any) { c.ModuleStatusLogInspection = asString(v) }},
	{"overallWebReputationStatus", "module_status_web_reputation", func(c *Computer, v any) { c.ModuleStatusWebReputation = asString(v) }},
	{"overallStatus", "overall_status", func(c *Computer, v any) { c.OverallStatus = asString(v) }},
}

// New builds a computer record from a raw host-detail payload and an
// optional manager. Fields whose source key is absent are skipped with a
// warning through the manager's logger when one is present; absence never
// fails construction.
func New(hostDetails map[string]any, mgr manager.Manager) *Computer {
	c := &Computer{
		Data: hostDetails,
		mgr:  mgr,
	}
	for _, field := range hostDetailFields {
		v, ok := hostDetails[field.source]
		if !ok {
			c.logf("could not add property [%s] to computer [%v]: key %q absent",
				field.name, hostDetails["name"], field.source)
			continue
		}
		field.assign(c, v)
	}
	if n, ok := interfaceCount(hostDetails["hostInterfaces"]); ok {
		c.interfaces = &n
	} else {
		c.logf("could not add property [number_of_interfaces] to computer [%v]: key %q absent",
			hostDetails["name"], "hostInterfaces")
	}
	return c
}

func interfaceCount(raw any) (int, bool) {
	switch v := raw.(type) {
	case []any:
		return len(v), true
	case []map[string]any:
		return len(v), true
	default:
		return 0, false
	}
}

// ID returns the host id the manager assigned this computer.
func (c *Computer) ID() int64 {
	id, _ := asInt64(c.Data["ID"])
	return id
}

// InterfaceCount reports the number of entries in the host's interface list.
// ok is false when the detail payload carried no interface list.
func (c *Computer) InterfaceCount() (int, bool) {
	if c.interfaces == nil {
		return 0, false
	}
	return *c.interfaces, true
}

// SendEventsToManager asks the computer to push the latest events it has
// seen to the manager. The remote call returns nothing on success or
// failure, so a nil error does not confirm the events were sent. Without a
// manager this is a no-op.
func (c *Computer) SendEventsToManager() error {
	if c.mgr == nil {
		return nil
	}
	return c.mgr.RequestEventsFromComputer(c.ID())
}

// ClearWarningsAndErrors clears any warnings or errors currently showing on
// the computer. A nil error does not confirm the clear ran. Without a
// manager this is a no-op.
func (c *Computer) ClearWarningsAndErrors() error {
	if c.mgr == nil {
		return nil
	}
	return c.mgr.ClearWarningsAndErrorsFromComputers(c.ID())
}

// ScanForMalware requests a malware scan be run immediately. A nil error
// does not confirm the scan started. Without a manager this is a no-op.
func (c *Computer) ScanForMalware() error {
	if c.mgr == nil {
		return nil
	}
	return c.mgr.ScanComputersForMalware(c.ID())
}

// ScanForIntegrity requests an integrity scan be run immediately. A nil
// error does not confirm the scan started. Without a manager this is a
// no-op.
func (c *Computer) ScanForIntegrity() error {
	if c.mgr == nil {
		return nil
	}
	return c.mgr.ScanComputersForIntegrity(c.ID())
}

// ScanForRecommendations requests a recommendation scan be run immediately.
// A nil error does not confirm the scan started. Without a manager this is a
// no-op.
func (c *Computer) ScanForRecommendations() error {
	if c.mgr == nil {
		return nil
	}
	return c.mgr.ScanComputersForRecommendations(c.ID())
}

// Details renders the normalized string properties, one per line, sorted by
// property name. Unset properties are omitted.
func (c *Computer) Details() string {
	props := map[string]string{
		"hostname":                           c.Hostname,
		"description":                        c.Description,
		"display_name":                       c.DisplayName,
		"platform":                           c.Platform,
		"policy_name":                        c.PolicyName,
		"cloud_image_id":                     c.CloudImageID,
		"cloud_instance_id":                  c.CloudInstanceID,
		"cloud_type":                         c.CloudType,
		"status_light":                       c.StatusLight,
		"last_ip":                            c.LastIP,
		"module_status_anti_malware":         c.ModuleStatusAntiMalware,
		"module_status_ips":                  c.ModuleStatusIPS,
		"module_status_firewall":             c.ModuleStatusFirewall,
		"module_status_integrity_monitoring": c.ModuleStatusIntegrityMonitoring,
		"module_status_log_inspection":       c.ModuleStatusLogInspection,
		"module_status_web_reputation":       c.ModuleStatusWebReputation,
		"overall_status":                     c.OverallStatus,
	}
	names := make([]string, 0, len(props))
	for name, value := range props {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s\t%s\n", name, props[name])
	}
	return b.String()
}

func (c *Computer) logf(format string, args ...any) {
	if c.mgr != nil {
		c.mgr.Log(format, args...)
	}
}

func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
