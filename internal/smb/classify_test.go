package smb

import (
	"strings"
	"testing"

	"github.com/tunebridge/tunebridge/internal/model"
)

func TestClassifyKnownCodes(t *testing.T) {
	tests := []struct {
		status   uint32
		expected model.ErrorKind
	}{
		{statusLogonFailure, model.Authentication},
		{statusWrongPassword, model.Authentication},
		{statusAccountDisabled, model.Authentication},
		{statusPasswordExpired, model.Authentication},
		{statusAccountRestriction, model.Authentication},
		{statusAccountLockedOut, model.Authentication},
		{statusNoSuchDevice, model.HostNotFound},
		{statusConnectionRefused, model.HostNotFound},
		{statusBadNetworkName, model.ShareOrPathNotFound},
		{statusObjectPathNotFound, model.ShareOrPathNotFound},
		{statusNoSuchFile, model.ShareOrPathNotFound},
		{statusObjectNameNotFound, model.ShareOrPathNotFound},
		{statusObjectNameInvalid, model.ShareOrPathNotFound},
		{statusAccessDenied, model.PermissionDenied},
		{statusPipeNotAvailable, model.TransientNetwork},
		{statusPipeDisconnected, model.TransientNetwork},
		{statusPipeBroken, model.TransientNetwork},
		{statusSharingViolation, model.TransientNetwork},
	}
	for _, test := range tests {
		if got := Classify(test.status); got != test.expected {
			t.Fatalf("Classify(0x%08x) = %v, want %v", test.status, got, test.expected)
		}
	}
}

func TestClassifyUnknownCode(t *testing.T) {
	if got := Classify(0xC0001234); got != model.Unclassified {
		t.Fatalf("unknown code classified as %v", got)
	}
	if got := Classify(0); got != model.Unclassified {
		t.Fatalf("zero code classified as %v", got)
	}
}

func TestMessageFor(t *testing.T) {
	if got := MessageFor(statusAccessDenied, "ignored"); got != "access denied" {
		t.Fatalf("canonical message not used: %q", got)
	}
	if got := MessageFor(0xC0001234, "server said no"); got != "server said no" {
		t.Fatalf("raw message not used: %q", got)
	}
	got := MessageFor(0xC0001234, "")
	if !strings.Contains(got, "0xc0001234") {
		t.Fatalf("fallback message missing code: %q", got)
	}
}

func TestClassifyErrorCarriesStatus(t *testing.T) {
	fault := ClassifyError(0xC0009999, "", nil)
	if fault.Kind != model.Unclassified {
		t.Fatalf("kind = %v", fault.Kind)
	}
	if fault.Status != 0xC0009999 {
		t.Fatalf("status = 0x%08x", fault.Status)
	}
	if fault.Error() == "" {
		t.Fatalf("empty error text")
	}
}
