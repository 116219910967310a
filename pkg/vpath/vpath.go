// Package vpath builds and parses the virtual paths used to address
// files on a remote share without embedding credentials. A remote file
// is addressed as the pair (connection id, smb:// path); the streaming
// gateway re-exposes that pair as a loopback HTTP URL.
package vpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// StreamPrefix is the fixed route family served by the gateway.
const StreamPrefix = "/stream/"

// SMBScheme prefixes every remote path handled by this package.
const SMBScheme = "smb://"

var (
	// ErrNotStream reports a request path outside the stream route family.
	ErrNotStream = errors.New("vpath: path does not start with " + StreamPrefix)
	// ErrMalformed reports a stream path missing its connection id or file path.
	ErrMalformed = errors.New("vpath: malformed stream path")

	dupSlashes = regexp.MustCompile(`/{2,}`)
)

// ShareRoot builds the smb:// root URL for a host and configured share
// path. The share path is normalized: surrounding and duplicate slashes
// are collapsed and the result always carries one trailing slash, so it
// can be used directly as a prefix.
func ShareRoot(host, sharePath string) string {
	normalized := dupSlashes.ReplaceAllString(strings.Trim(sharePath, "/"), "/")
	root := SMBScheme + host
	if normalized != "" {
		root += "/" + normalized
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root
}

// StreamPath maps a remote smb:// path onto the gateway route for the
// given connection. The smb:// scheme is stripped and the remainder is
// carried byte-for-byte; ParseStreamPath reverses this exactly.
func StreamPath(connectionID, smbPath string) string {
	return StreamPrefix + connectionID + "/" + strings.TrimPrefix(smbPath, SMBScheme)
}

// StreamingURL builds the full loopback URL for a remote path.
func StreamingURL(port int, connectionID, smbPath string) string {
	return fmt.Sprintf("http://127.0.0.1:%d%s", port, StreamPath(connectionID, smbPath))
}

// ParseStreamPath splits a gateway request path back into the connection
// id and the original smb:// path. No percent-decoding happens here; the
// remainder goes through untouched.
func ParseStreamPath(requestPath string) (connectionID, smbPath string, err error) {
	if !strings.HasPrefix(requestPath, StreamPrefix) {
		return "", "", ErrNotStream
	}
	rest := strings.TrimPrefix(requestPath, StreamPrefix)
	connectionID, remainder, found := strings.Cut(rest, "/")
	if !found || connectionID == "" || remainder == "" {
		return "", "", ErrMalformed
	}
	return connectionID, SMBScheme + remainder, nil
}

// Parent returns the parent directory of an smb:// path with a trailing
// slash, or ok=false when the path has no parent deeper than a bare
// host (smb://host/).
func Parent(smbPath string) (string, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(smbPath, SMBScheme), "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx <= 0 {
		return "", false
	}
	return SMBScheme + trimmed[:idx+1], true
}

// SameFolder compares two smb:// paths ignoring a trailing slash.
func SameFolder(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}
