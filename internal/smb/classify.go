// Package smb wraps remote-share sessions: one client per connection
// descriptor, directory listing, file reads, and the single place where
// raw protocol failures are classified into the error taxonomy.
package smb

import (
	"fmt"

	"github.com/tunebridge/tunebridge/internal/model"
)

// Classify maps a raw NT status code onto an error kind. It is total:
// unknown codes fall into Unclassified, never an error or panic.
func Classify(status uint32) model.ErrorKind {
	switch status {
	case statusLogonFailure,
		statusWrongPassword,
		statusAccountDisabled,
		statusPasswordExpired,
		statusAccountRestriction,
		statusAccountLockedOut:
		return model.Authentication
	case statusNoSuchDevice,
		statusConnectionRefused:
		return model.HostNotFound
	case statusBadNetworkName,
		statusObjectPathNotFound,
		statusNoSuchFile,
		statusObjectNameNotFound,
		statusObjectNameInvalid:
		return model.ShareOrPathNotFound
	case statusAccessDenied:
		return model.PermissionDenied
	case statusPipeNotAvailable,
		statusPipeDisconnected,
		statusPipeBroken,
		statusSharingViolation:
		return model.TransientNetwork
	default:
		return model.Unclassified
	}
}

// MessageFor returns display text for a status code: the canonical
// message when one exists, otherwise the raw message, otherwise a
// generic sentence naming the hex code.
func MessageFor(status uint32, rawMessage string) string {
	if msg, ok := canonicalMessages[status]; ok {
		return msg
	}
	if rawMessage != "" {
		return rawMessage
	}
	return fmt.Sprintf("remote access failed with status 0x%08x", status)
}

// ClassifyError builds the typed fault for a raw status and message.
func ClassifyError(status uint32, rawMessage string, cause error) *model.Fault {
	return &model.Fault{
		Kind:    Classify(status),
		Message: MessageFor(status, rawMessage),
		Status:  status,
		Err:     cause,
	}
}
