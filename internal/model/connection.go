package model

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/tunebridge/tunebridge/pkg/vpath"
)

// Connection describes one remote share and the credentials used to
// reach it. Identity is the ID; an edit replaces the record wholesale.
// Credentials never leave this struct for URL construction: streaming
// URLs carry only the ID.
type Connection struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Host      string `json:"host"`
	SharePath string `json:"sharePath"`
	Username  string `json:"username,omitempty"`
	Password  string `json:"password,omitempty"`
}

// NewConnection builds a connection with a fresh identifier.
func NewConnection(nickname, host, sharePath, username, password string) Connection {
	return Connection{
		ID:        NewID(),
		Nickname:  nickname,
		Host:      host,
		SharePath: sharePath,
		Username:  username,
		Password:  password,
	}
}

// Anonymous reports whether the connection authenticates without
// credentials. An empty username means no auth object at all.
func (c Connection) Anonymous() bool {
	return c.Username == ""
}

// Root returns the normalized smb:// root of the configured share.
func (c Connection) Root() string {
	return vpath.ShareRoot(c.Host, c.SharePath)
}

// NewID returns a UUIDv4 string.
func NewID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return hex.EncodeToString(b[0:4]) + "-" +
		hex.EncodeToString(b[4:6]) + "-" +
		hex.EncodeToString(b[6:8]) + "-" +
		hex.EncodeToString(b[8:10]) + "-" +
		hex.EncodeToString(b[10:16])
}
