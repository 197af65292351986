// Package filters builds the search-criteria records accepted by the
// manager's retrieval calls. SOAP entrypoints take a triple of time, host
// and event-id filters; REST entrypoints take a single combined filter
// carried on the query string. Builders validate the operator against the
// closed set the manager understands and return an immutable record; they
// perform no network calls and keep no state.
package filters

import (
	"fmt"
	"strings"
	"time"
)

// Closed operator sets understood by the manager. Matching is
// case-insensitive; stored values are always upper-case.
var (
	HostTypes        = []string{"STANDARD", "ESX", "APPLIANCE", "VM"}
	HostDetailLevels = []string{"HIGH", "MEDIUM", "LOW"}

	HostFilterTypes = []string{
		"ALL_HOSTS",
		"HOSTS_IN_GROUP",
		"HOSTS_USING_SECURITY_PROFILE",
		"HOSTS_IN_GROUP_AND_ALL_SUBGROUPS",
		"SPECIFIC_HOST",
		"MY_HOSTS",
	}

	TimeFilterTypes = []string{
		"LAST_HOUR",
		"LAST_24_HOURS",
		"LAST_7_DAYS",
		"CUSTOM_RANGE",
		"SPECIFIC_TIME",
		"PREVIOUS_MONTH",
	}

	Operators = []string{"GREATER_THAN", "LESS_THAN", "EQUAL"}

	TagFilterTypes = []string{"ALL", "UNTAGGED", "TAGS"}

	ExternalFilterTypes = []string{
		"ALL_EXT_HOSTS",
		"HOSTS_IN_EXT_GROUP",
		"SPECIFIC_EXT_HOST",
		"HOSTS_IN_EXT_GROUP_AND_ALL_SUBGROUPS",
	}

	// RESTOperators are the comparison operators accepted by the REST API:
	// greater than, greater or equal, equal, less than, less or equal.
	RESTOperators = []string{"GT", "GE", "EQ", "LT", "LE"}
)

// InvalidOperatorError reports an operator outside the set its filter kind
// accepts.
type InvalidOperatorError struct {
	Operator string
	Valid    []string
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("invalid operator %q, valid operators: %s",
		e.Operator, strings.Join(e.Valid, ", "))
}

// normalizeOperator upper-cases op and checks membership in valid.
func normalizeOperator(op string, valid []string) (string, error) {
	upper := strings.ToUpper(op)
	for _, v := range valid {
		if upper == v {
			return upper, nil
		}
	}
	return "", &InvalidOperatorError{Operator: op, Valid: valid}
}

// Int64 returns a pointer to v, for optional numeric filter fields.
func Int64(v int64) *int64 { return &v }

// Time returns a pointer to t, for optional time filter fields.
func Time(t time.Time) *time.Time { return &t }

// HostFilter limits retrieval scope by host group, security profile or a
// specific computer. The default filter (type ALL_HOSTS, no ids) matches
// every host the account can see.
type HostFilter struct {
	HostGroupID       *int64
	HostID            *int64
	SecurityProfileID *int64
	Type              string
}

// NewHostFilter builds a host filter. An empty operator defaults to
// ALL_HOSTS; anything outside HostFilterTypes is an *InvalidOperatorError.
func NewHostFilter(hostGroupID, hostID, securityProfileID *int64, operator string) (*HostFilter, error) {
	if operator == "" {
		operator = "ALL_HOSTS"
	}
	typ, err := normalizeOperator(operator, HostFilterTypes)
	if err != nil {
		return nil, err
	}
	return &HostFilter{
		HostGroupID:       hostGroupID,
		HostID:            hostID,
		SecurityProfileID: securityProfileID,
		Type:              typ,
	}, nil
}

// DefaultHostFilter matches all hosts.
func DefaultHostFilter() *HostFilter {
	return &HostFilter{Type: "ALL_HOSTS"}
}

// Params renders the filter in the manager's wire shape. Unset ids are sent
// as null, matching what the manager expects for an unbounded component.
func (f *HostFilter) Params() map[string]any {
	return map[string]any{
		"hostGroupID":       optInt64(f.HostGroupID),
		"hostID":            optInt64(f.HostID),
		"securityProfileID": optInt64(f.SecurityProfileID),
		"type":              f.Type,
	}
}

// TimeFilter limits retrieval scope by time. CUSTOM_RANGE requires RangeFrom
// and RangeTo; SPECIFIC_TIME requires SpecificTime.
type TimeFilter struct {
	RangeFrom    *time.Time
	RangeTo      *time.Time
	SpecificTime *time.Time
	Type         string
}

// NewTimeFilter builds a time filter. An empty operator defaults to
// LAST_7_DAYS.
func NewTimeFilter(rangeFrom, rangeTo, specificTime *time.Time, operator string) (*TimeFilter, error) {
	if operator == "" {
		operator = "LAST_7_DAYS"
	}
	typ, err := normalizeOperator(operator, TimeFilterTypes)
	if err != nil {
		return nil, err
	}
	return &TimeFilter{
		RangeFrom:    rangeFrom,
		RangeTo:      rangeTo,
		SpecificTime: specificTime,
		Type:         typ,
	}, nil
}

// DefaultTimeFilter matches events from the last 7 days.
func DefaultTimeFilter() *TimeFilter {
	return &TimeFilter{Type: "LAST_7_DAYS"}
}

// Params renders the filter in the manager's wire shape.
func (f *TimeFilter) Params() map[string]any {
	return map[string]any{
		"rangeFrom":    optTime(f.RangeFrom),
		"rangeTo":      optTime(f.RangeTo),
		"specificTime": optTime(f.SpecificTime),
		"type":         f.Type,
	}
}

// IDFilter limits retrieval scope by event id. Event ids are assigned as the
// primary key when an agent generates an event, so a poller can record the
// highest id it has seen and ask only for ids greater than that.
type IDFilter struct {
	ID       int64
	Operator string
}

// NewIDFilter builds an event-id filter. The zero values (id 0, empty
// operator) yield the no-op filter "all events with id greater than 0".
func NewIDFilter(eventID int64, operator string) (*IDFilter, error) {
	if operator == "" {
		operator = "GREATER_THAN"
	}
	op, err := normalizeOperator(operator, Operators)
	if err != nil {
		return nil, err
	}
	return &IDFilter{ID: eventID, Operator: op}, nil
}

// DefaultIDFilter matches every event id greater than 0.
func DefaultIDFilter() *IDFilter {
	return &IDFilter{ID: 0, Operator: "GREATER_THAN"}
}

// Params renders the filter in the manager's wire shape.
func (f *IDFilter) Params() map[string]any {
	return map[string]any{
		"id":       f.ID,
		"operator": f.Operator,
	}
}

// TagFilter limits retrieval scope by event tags. ALL returns an unbounded
// set and UNTAGGED only events without tags; with TAGS, Tags is a freeform
// comma-delimited list of tag names ('!' prefix for not-tagged).
type TagFilter struct {
	Tags string
	Type string
}

// NewTagFilter builds a tag filter. An empty operator defaults to ALL.
func NewTagFilter(tags, operator string) (*TagFilter, error) {
	if operator == "" {
		operator = "ALL"
	}
	typ, err := normalizeOperator(operator, TagFilterTypes)
	if err != nil {
		return nil, err
	}
	return &TagFilter{Tags: tags, Type: typ}, nil
}

// Params renders the filter in the manager's wire shape.
func (f *TagFilter) Params() map[string]any {
	var tags any
	if f.Tags != "" {
		tags = f.Tags
	}
	return map[string]any{
		"tags": tags,
		"type": f.Type,
	}
}

// ExternalFilter limits retrieval scope by the external id of a host or host
// group.
type ExternalFilter struct {
	HostExternalID      string
	HostGroupExternalID string
	Type                string
}

// NewExternalFilter builds an external-id filter. An empty operator defaults
// to ALL_EXT_HOSTS.
func NewExternalFilter(hostExternalID, hostGroupExternalID, operator string) (*ExternalFilter, error) {
	if operator == "" {
		operator = "ALL_EXT_HOSTS"
	}
	typ, err := normalizeOperator(operator, ExternalFilterTypes)
	if err != nil {
		return nil, err
	}
	return &ExternalFilter{
		HostExternalID:      hostExternalID,
		HostGroupExternalID: hostGroupExternalID,
		Type:                typ,
	}, nil
}

// Params renders the filter in the manager's wire shape.
func (f *ExternalFilter) Params() map[string]any {
	return map[string]any{
		"hostExternalID":      f.HostExternalID,
		"hostGroupExternalID": f.HostGroupExternalID,
		"type":                f.Type,
	}
}

// RESTEventFilter is the combined filter carried on a REST call's query
// string. EventTime is milliseconds since the Unix epoch; for integrity
// events the manager compares it at millisecond accuracy.
type RESTEventFilter struct {
	EventID     *int64
	EventIDOp   string
	EventTime   *int64
	EventTimeOp string
	// MaxItems caps the number of returned events. Zero means the server
	// default; the builder clamps explicit values to at least 1.
	MaxItems int
}

// NewRESTEventFilter builds a REST event filter. The two operator arguments
// are validated against RESTOperators independently; an empty operator
// leaves that component unset instead of failing. maxItems below 1 is
// clamped to 1.
func NewRESTEventFilter(eventID *int64, eventIDOp string, eventTime *int64, eventTimeOp string, maxItems int) (*RESTEventFilter, error) {
	f := &RESTEventFilter{
		EventID:   eventID,
		EventTime: eventTime,
		MaxItems:  maxItems,
	}
	if f.MaxItems < 1 {
		f.MaxItems = 1
	}
	if eventIDOp != "" {
		op, err := normalizeOperator(eventIDOp, RESTOperators)
		if err != nil {
			return nil, err
		}
		f.EventIDOp = op
	}
	if eventTimeOp != "" {
		op, err := normalizeOperator(eventTimeOp, RESTOperators)
		if err != nil {
			return nil, err
		}
		f.EventTimeOp = op
	}
	return f, nil
}

// DefaultRESTEventFilter matches every event with id greater than 0 and
// leaves the item cap to the server default.
func DefaultRESTEventFilter() *RESTEventFilter {
	return &RESTEventFilter{EventID: Int64(0), EventIDOp: "GT"}
}

// Params renders the filter as REST query parameters. Unset components are
// null so the transport drops them from the query string.
func (f *RESTEventFilter) Params() map[string]any {
	var maxItems any
	if f.MaxItems > 0 {
		maxItems = f.MaxItems
	}
	return map[string]any{
		"eventId":     optInt64(f.EventID),
		"eventIdOp":   optString(f.EventIDOp),
		"eventTime":   optInt64(f.EventTime),
		"eventTimeOp": optString(f.EventTimeOp),
		"maxItems":    maxItems,
	}
}

func optInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func optTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func optString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
