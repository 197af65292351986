// Package manager defines the contract between this library and the
// component that actually talks to the Deep Security Manager. The concrete
// manager owns authentication, session cookies and the SOAP/REST wire
// protocol; this library only shapes requests for it and reshapes its
// responses. Every collection and computer record holds the manager as an
// injected, possibly-nil reference and checks for nil once at the call
// boundary.
package manager

// Protocol tags selecting which of the manager's two call conventions a
// request uses.
const (
	APITypeSOAP = "SOAP"
	APITypeREST = "REST"
)

// Request is the call shape handed to the manager for dispatch. The manager
// fills in the protocol envelope; ID is a per-dispatch correlation id
// stamped by the caller when the manager leaves it empty.
type Request struct {
	API           string
	Call          string
	UseCookieAuth bool
	ID            string
	Query         map[string]any
	Data          map[string]any
}

// Response carries the manager's answer. Status follows HTTP semantics (200
// is the only success). Data holds the decoded payload; callers normalize a
// single-item payload to a one-element list before indexing it.
type Response struct {
	Status int
	Data   any
}

// Manager is the transport collaborator consumed by this library.
//
// The five action calls are fire-and-forget: the remote API returns nothing
// on success or failure, so a nil error never confirms the action ran. This
// is a limitation of the wrapped service, not of the implementation.
type Manager interface {
	// GetRequestFormat returns a request skeleton for the given protocol
	// tag (APITypeSOAP or APITypeREST) and entrypoint.
	GetRequestFormat(api, call string, useCookieAuth bool) *Request

	// Do performs exactly one remote call. No retries happen at this
	// layer; cancellation and timeouts belong to the manager.
	Do(req *Request) (*Response, error)

	// Log records a library diagnostic through the host's logger.
	Log(format string, args ...any)

	// RequestEventsFromComputer asks a computer to push its latest events
	// to the manager.
	RequestEventsFromComputer(hostID int64) error

	// ClearWarningsAndErrorsFromComputers clears any warnings or errors
	// currently showing on the given computers.
	ClearWarningsAndErrorsFromComputers(hostIDs ...int64) error

	// ScanComputersForMalware requests an immediate malware scan.
	ScanComputersForMalware(hostIDs ...int64) error

	// ScanComputersForIntegrity requests an immediate integrity scan.
	ScanComputersForIntegrity(hostIDs ...int64) error

	// ScanComputersForRecommendations requests an immediate recommendation
	// scan.
	ScanComputersForRecommendations(hostIDs ...int64) error
}
