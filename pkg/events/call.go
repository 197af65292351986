package events

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"deepsec/pkg/filters"
	"deepsec/pkg/manager"
)

// ErrNoManager is returned when a collection is asked to fetch without a
// manager attached.
var ErrNoManager = errors.New("no manager attached")

// StatusError reports a call whose response status was not 200.
type StatusError struct {
	Call   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("call %s returned status %d", e.Call, e.Status)
}

// ShapeError reports a 200 response missing a key the category's unwrapping
// expects. The manager's response shape is a trust boundary; an unexpected
// shape is surfaced, never defaulted.
type ShapeError struct {
	Call string
	Key  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response shape for %s: missing or malformed %q", e.Call, e.Key)
}

// categorySpec pins a category's entrypoint names, response nesting paths
// and id fields per transport. The mapping is fixed by the remote API, never
// discovered. An empty soapCall or restCall means the category does not
// support that transport.
type categorySpec struct {
	name string

	soapCall  string
	soapPath  []string
	soapIDKey string

	restCall       string
	restPath       []string
	restIDKey      string
	restCookieAuth bool
}

// buildSOAPParams merges the time/host/id filter triple under the fixed
// SOAP parameter keys, defaulting any missing filter to its builder's no-op
// default. Extension fields are applied last and may overwrite defaults.
func buildSOAPParams(timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, ext map[string]any) map[string]any {
	if timeF == nil {
		timeF = filters.DefaultTimeFilter()
	}
	if hostF == nil {
		hostF = filters.DefaultHostFilter()
	}
	if idF == nil {
		idF = filters.DefaultIDFilter()
	}
	parms := map[string]any{
		"timeFilter":    timeF.Params(),
		"hostFilter":    hostF.Params(),
		"eventIdFilter": idF.Params(),
	}
	for k, v := range ext {
		parms[k] = v
	}
	return parms
}

// buildRESTParams flattens the combined REST filter into query parameters,
// defaulting a missing filter to "id greater than 0". Extension fields are
// applied last and may overwrite defaults.
func buildRESTParams(restF *filters.RESTEventFilter, ext map[string]any) map[string]any {
	if restF == nil {
		restF = filters.DefaultRESTEventFilter()
	}
	parms := restF.Params()
	for k, v := range ext {
		parms[k] = v
	}
	return parms
}

// call dispatches exactly one request through the manager and returns the
// response payload normalized to a list. A non-200 status or transport error
// propagates untranslated apart from wrapping.
func (c *Collection) call(api, entrypoint string, data, query map[string]any, cookieAuth bool) ([]any, error) {
	if c.mgr == nil {
		return nil, ErrNoManager
	}
	req := c.mgr.GetRequestFormat(api, entrypoint, cookieAuth)
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Query = query
	req.Data = data

	resp, err := c.mgr.Do(req)
	if err != nil {
		c.observeCall(api, entrypoint, "error")
		return nil, fmt.Errorf("%s call %s: %w", api, entrypoint, err)
	}
	if resp == nil || resp.Status != http.StatusOK {
		status := 0
		if resp != nil {
			status = resp.Status
		}
		c.observeCall(api, entrypoint, "error")
		return nil, &StatusError{Call: entrypoint, Status: status}
	}
	c.observeCall(api, entrypoint, "ok")

	// Single-item responses are normalized to a one-element list.
	if list, ok := resp.Data.([]any); ok {
		return list, nil
	}
	return []any{resp.Data}, nil
}

// eventsAt walks path through the first response item and returns the event
// list found at the end of it. Every missing or mistyped step is a
// *ShapeError.
func eventsAt(call string, data []any, path ...string) ([]map[string]any, error) {
	if len(data) == 0 {
		return nil, &ShapeError{Call: call, Key: path[0]}
	}
	node, ok := data[0].(map[string]any)
	if !ok {
		return nil, &ShapeError{Call: call, Key: path[0]}
	}
	for _, key := range path[:len(path)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			return nil, &ShapeError{Call: call, Key: key}
		}
		node = child
	}
	leaf := path[len(path)-1]
	raw, ok := node[leaf]
	if !ok {
		return nil, &ShapeError{Call: call, Key: leaf}
	}
	switch v := raw.(type) {
	case []any:
		evs := make([]map[string]any, 0, len(v))
		for _, item := range v {
			props, ok := item.(map[string]any)
			if !ok {
				return nil, &ShapeError{Call: call, Key: leaf}
			}
			evs = append(evs, props)
		}
		return evs, nil
	case []map[string]any:
		return v, nil
	case map[string]any:
		// SOAP decoding collapses a one-element array to its element.
		return []map[string]any{v}, nil
	default:
		return nil, &ShapeError{Call: call, Key: leaf}
	}
}

// fetchSOAP performs one SOAP retrieval for spec and indexes the result.
func (c *Collection) fetchSOAP(spec categorySpec, timeF *filters.TimeFilter, hostF *filters.HostFilter, idF *filters.IDFilter, ext map[string]any) (int, error) {
	data, err := c.call(manager.APITypeSOAP, spec.soapCall, buildSOAPParams(timeF, hostF, idF, ext), nil, true)
	if err != nil {
		return c.Len(), err
	}
	evs, err := eventsAt(spec.soapCall, data, spec.soapPath...)
	if err != nil {
		return c.Len(), err
	}
	return c.index(spec, spec.soapCall, evs, spec.soapIDKey)
}

// fetchREST performs one REST retrieval for spec and indexes the result.
func (c *Collection) fetchREST(spec categorySpec, restF *filters.RESTEventFilter, ext map[string]any) (int, error) {
	data, err := c.call(manager.APITypeREST, spec.restCall, nil, buildRESTParams(restF, ext), spec.restCookieAuth)
	if err != nil {
		return c.Len(), err
	}
	evs, err := eventsAt(spec.restCall, data, spec.restPath...)
	if err != nil {
		return c.Len(), err
	}
	return c.index(spec, spec.restCall, evs, spec.restIDKey)
}

// index inserts every event keyed by idKey and reports the collection's
// total element count, not just the newly added count.
func (c *Collection) index(spec categorySpec, call string, evs []map[string]any, idKey string) (int, error) {
	for _, props := range evs {
		raw, ok := props[idKey]
		if !ok {
			return c.Len(), &ShapeError{Call: call, Key: idKey}
		}
		id, ok := asInt64(raw)
		if !ok {
			return c.Len(), &ShapeError{Call: call, Key: idKey}
		}
		c.put(id, newEvent(props))
	}
	c.observeEvents(spec.name, len(evs))
	return c.Len(), nil
}

func (c *Collection) observeCall(api, call, outcome string) {
	if c.mx != nil {
		c.mx.ObserveCall(api, call, outcome)
	}
}

func (c *Collection) observeEvents(category string, n int) {
	if c.mx != nil {
		c.mx.ObserveEvents(category, n)
	}
}
