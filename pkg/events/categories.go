package events

import (
	"deepsec/pkg/filters"
	"deepsec/pkg/manager"
)

// The transport support matrix below is fixed by the remote API: system,
// firewall and intrusion-prevention events are SOAP-only, application
// control is REST-only, and the rest can use either.
var (
	systemSpec = categorySpec{
		name:      "system",
		soapCall:  "systemEventRetrieve2",
		soapPath:  []string{"systemEvents"},
		soapIDKey: "systemEventID",
	}

	antiMalwareSpec = categorySpec{
		name:      "antimalware",
		soapCall:  "antiMalwareEventRetrieve2",
		soapPath:  []string{"antiMalwareEvents"},
		soapIDKey: "antiMalwareEventID",
		restCall:  "events/antimalware",
		restPath:  []string{"antiMalwareEventListing", "events"},
		restIDKey: "antiMalwareEventID",
	}

	webReputationSpec = categorySpec{
		name:      "webreputation",
		soapCall:  "webReputationEventRetrieve2",
		soapPath:  []string{"webReputationEvents"},
		soapIDKey: "webReputationEventID",
		restCall:  "events/webreputation",
		restPath:  []string{"WebReputationEventListing", "WebReputationEvent"},
		restIDKey: "webReputationEventID",
	}

	firewallSpec = categorySpec{
		name:      "firewall",
		soapCall:  "firewallEventRetrieve2",
		soapPath:  []string{"firewallEvents"},
		soapIDKey: "firewallEventID",
	}

	intrusionPreventionSpec = categorySpec{
		name:      "intrusionprevention",
		soapCall:  "DPIEventRetrieve2",
		soapPath:  []string{"DPIEvents"},
		soapIDKey: "intrusionEventID",
	}

	integrityMonitoringSpec = categorySpec{
		name:     "integritymonitoring",
		soapCall: "IntegrityEventRetrieve2",
		// The SOAP response nests an extra return wrapper for this
		// category only.
		soapPath:       []string{"integrityEventRetrieve2Return", "integrityEvents"},
		soapIDKey:      "integrityEventID",
		restCall:       "events/integrity",
		restPath:       []string{"ListEventsResponse", "events"},
		restIDKey:      "eventID",
		restCookieAuth: true,
	}

	logInspectionSpec = categorySpec{
		name:           "loginspection",
		soapCall:       "logInspectionEventRetrieve2",
		soapPath:       []string{"logInspectionEvents"},
		soapIDKey:      "logInspectionEventID",
		restCall:       "events/logInspection",
		restPath:       []string{"ListEventsResponse", "events"},
		restIDKey:      "eventID",
		restCookieAuth: true,
	}

	applicationControlSpec = categorySpec{
		name:           "appcontrol",
		restCall:       "events/appcontrol",
		restPath:       []string{"ListEventsResponse", "events"},
		restIDKey:      "eventID",
		restCookieAuth: true,
	}
)

// SystemEvents retrieves system events. The manager exposes them through the
// SOAP API only.
type SystemEvents struct {
	Collection
}

// NewSystemEvents builds an empty collection bound to mgr.
func NewSystemEvents(mgr manager.Manager) *SystemEvents {
	return &SystemEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves system events and returns the collection's total count. Nil
// filters default to last-7-days, all-hosts and id-greater-than-0.
// includeNonHostEvents also retrieves events not tied to a computer.
func (c *SystemEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, includeNonHostEvents bool) (int, error) {
	return c.fetchSOAP(systemSpec, timeF, hostF, idF, map[string]any{
		"includeNonHostEvents": includeNonHostEvents,
	})
}

// AntiMalwareEvents retrieves anti-malware events via either the SOAP or the
// REST API.
type AntiMalwareEvents struct {
	Collection
}

// NewAntiMalwareEvents builds an empty collection bound to mgr.
func NewAntiMalwareEvents(mgr manager.Manager) *AntiMalwareEvents {
	return &AntiMalwareEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves anti-malware events and returns the collection's total count.
// With useREST, restF is the only filter consulted (nil retrieves all
// available events); otherwise the SOAP filter triple applies.
func (c *AntiMalwareEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, restF *filters.RESTEventFilter, useREST bool) (int, error) {
	if useREST {
		return c.fetchREST(antiMalwareSpec, restF, nil)
	}
	return c.fetchSOAP(antiMalwareSpec, timeF, hostF, idF, nil)
}

// WebReputationEvents retrieves web-reputation events via either the SOAP or
// the REST API.
type WebReputationEvents struct {
	Collection
}

// NewWebReputationEvents builds an empty collection bound to mgr.
func NewWebReputationEvents(mgr manager.Manager) *WebReputationEvents {
	return &WebReputationEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves web-reputation events and returns the collection's total
// count. With useREST, restF is the only filter consulted; otherwise the
// SOAP filter triple applies.
func (c *WebReputationEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, restF *filters.RESTEventFilter, useREST bool) (int, error) {
	if useREST {
		return c.fetchREST(webReputationSpec, restF, nil)
	}
	return c.fetchSOAP(webReputationSpec, timeF, hostF, idF, nil)
}

// FirewallEvents retrieves firewall events. The manager exposes them through
// the SOAP API only.
type FirewallEvents struct {
	Collection
}

// NewFirewallEvents builds an empty collection bound to mgr.
func NewFirewallEvents(mgr manager.Manager) *FirewallEvents {
	return &FirewallEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves firewall events and returns the collection's total count.
func (c *FirewallEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter) (int, error) {
	return c.fetchSOAP(firewallSpec, timeF, hostF, idF, nil)
}

// IntrusionPreventionEvents retrieves intrusion-prevention (DPI) events. The
// manager exposes them through the SOAP API only.
type IntrusionPreventionEvents struct {
	Collection
}

// NewIntrusionPreventionEvents builds an empty collection bound to mgr.
func NewIntrusionPreventionEvents(mgr manager.Manager) *IntrusionPreventionEvents {
	return &IntrusionPreventionEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves intrusion-prevention events and returns the collection's total
// count.
func (c *IntrusionPreventionEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter) (int, error) {
	return c.fetchSOAP(intrusionPreventionSpec, timeF, hostF, idF, nil)
}

// IntegrityMonitoringEvents retrieves integrity-monitoring events via either
// the SOAP or the REST API.
type IntegrityMonitoringEvents struct {
	Collection
}

// NewIntegrityMonitoringEvents builds an empty collection bound to mgr.
func NewIntegrityMonitoringEvents(mgr manager.Manager) *IntegrityMonitoringEvents {
	return &IntegrityMonitoringEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves integrity-monitoring events and returns the collection's total
// count. extendedDesc asks REST for the entity detail SOAP includes by
// default; pass true for parity between the two transports. It only applies
// with useREST.
func (c *IntegrityMonitoringEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, restF *filters.RESTEventFilter, extendedDesc, useREST bool) (int, error) {
	if useREST {
		return c.fetchREST(integrityMonitoringSpec, restF, map[string]any{
			"extendedDesc": extendedDesc,
		})
	}
	return c.fetchSOAP(integrityMonitoringSpec, timeF, hostF, idF, nil)
}

// LogInspectionEvents retrieves log-inspection events via either the SOAP or
// the REST API.
type LogInspectionEvents struct {
	Collection
}

// NewLogInspectionEvents builds an empty collection bound to mgr.
func NewLogInspectionEvents(mgr manager.Manager) *LogInspectionEvents {
	return &LogInspectionEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves log-inspection events and returns the collection's total
// count. With useREST, restF is the only filter consulted; otherwise the
// SOAP filter triple applies.
func (c *LogInspectionEvents) Fetch(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, restF *filters.RESTEventFilter, useREST bool) (int, error) {
	if useREST {
		return c.fetchREST(logInspectionSpec, restF, nil)
	}
	return c.fetchSOAP(logInspectionSpec, timeF, hostF, idF, nil)
}

// ApplicationControlEvents retrieves application-control events. The manager
// exposes them through the REST API only.
type ApplicationControlEvents struct {
	Collection
}

// NewApplicationControlEvents builds an empty collection bound to mgr.
func NewApplicationControlEvents(mgr manager.Manager) *ApplicationControlEvents {
	return &ApplicationControlEvents{Collection: newCollection(mgr)}
}

// Fetch retrieves application-control events and returns the collection's total
// count. A nil filter retrieves all available events.
func (c *ApplicationControlEvents) Fetch(restF *filters.RESTEventFilter) (int, error) {
	return c.fetchREST(applicationControlSpec, restF, nil)
}
