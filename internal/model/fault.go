package model

import "fmt"

// ErrorKind is the closed taxonomy every raw failure is classified
// into. Layers above the share client only ever see these kinds.
type ErrorKind int

const (
	// Unclassified covers raw codes with no dedicated mapping. The
	// original code is preserved on the Fault for diagnostics.
	Unclassified ErrorKind = iota
	// Authentication covers logon failures, wrong or expired passwords,
	// and disabled, restricted, or locked accounts.
	Authentication
	// HostNotFound covers unreachable or refusing hosts.
	HostNotFound
	// ShareOrPathNotFound covers bad share names and missing paths.
	ShareOrPathNotFound
	// PermissionDenied covers access-denied responses.
	PermissionDenied
	// TransientNetwork covers broken pipes and sharing violations.
	TransientNetwork
	// SecurityDenied is local-only: the OS refused access.
	SecurityDenied
	// IOFailure is local-only: a generic I/O error.
	IOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case Authentication:
		return "authentication"
	case HostNotFound:
		return "host-not-found"
	case ShareOrPathNotFound:
		return "share-or-path-not-found"
	case PermissionDenied:
		return "permission-denied"
	case TransientNetwork:
		return "transient-network"
	case SecurityDenied:
		return "security-denied"
	case IOFailure:
		return "io-failure"
	default:
		return "unclassified"
	}
}

// UserMessage returns the fixed, actionable sentence shown for a kind.
func (k ErrorKind) UserMessage() string {
	switch k {
	case Authentication:
		return "Authentication failed. Check the username, password, and account state."
	case HostNotFound:
		return "The server could not be found or reached. Check the host name, IP address, and network."
	case ShareOrPathNotFound:
		return "The shared folder or path could not be found. Check the share name and path."
	case PermissionDenied:
		return "Access to the file or folder was denied. Check your access rights."
	case TransientNetwork:
		return "A network error occurred while talking to the server. Check the network and retry."
	case SecurityDenied:
		return "The operating system denied access to local storage."
	case IOFailure:
		return "Reading local storage failed."
	default:
		return "An unexpected error occurred while accessing the server."
	}
}

// Fault is a classified failure: the one typed error the listing and
// streaming layers report. Status carries the raw protocol code for
// diagnostics only; it never reaches user-facing messages.
type Fault struct {
	Kind    ErrorKind
	Message string
	Status  uint32
	Err     error
}

func (f *Fault) Error() string {
	if f.Message != "" {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return f.Kind.String()
}

func (f *Fault) Unwrap() error { return f.Err }

// NewFault builds a classified failure.
func NewFault(kind ErrorKind, message string, err error) *Fault {
	return &Fault{Kind: kind, Message: message, Err: err}
}
