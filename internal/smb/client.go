package smb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	smb2 "github.com/hirochachacha/go-smb2"
	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/pkg/vpath"
)

const dialTimeout = 10 * time.Second

// RawEntry is one child of a listed directory, before any
// folder/track classification.
type RawEntry struct {
	Name          string
	Dir           bool
	CanonicalPath string
}

// PathInfo reports what a remote path is.
type PathInfo struct {
	Exists bool
	IsDir  bool
	Size   int64
}

// Client wraps a single remote-share session for one connection
// descriptor. Construction never touches the network; the session is
// established on first use and reused for all later operations. The
// underlying session multiplexes requests, so one client may be used
// from many goroutines at once.
type Client struct {
	conn model.Connection
	log  *zap.Logger

	mu      sync.Mutex
	netConn net.Conn
	session *smb2.Session
	share   *smb2.Share
}

// NewClient builds a client for the given connection descriptor.
func NewClient(conn model.Connection, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{conn: conn, log: log}
}

// Connection returns the descriptor this client was built for.
func (c *Client) Connection() model.Connection { return c.conn }

// RootURL returns the normalized smb:// root of the configured share.
func (c *Client) RootURL() string { return c.conn.Root() }

// List returns the children of a remote directory, sorted
// case-insensitively by name with directories and files intermixed.
func (c *Client) List(ctx context.Context, smbPath string) ([]RawEntry, error) {
	share, err := c.ensureSession(ctx)
	if err != nil {
		return nil, c.translate(err)
	}
	rel, err := c.relPath(smbPath)
	if err != nil {
		return nil, err
	}
	infos, err := share.WithContext(ctx).ReadDir(dirOrDot(rel))
	if err != nil {
		return nil, c.translate(err)
	}

	prefix := smbPath
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	entries := make([]RawEntry, 0, len(infos))
	for _, info := range infos {
		name := strings.TrimSuffix(info.Name(), "/")
		canonical := prefix + name
		if info.IsDir() {
			canonical += "/"
		}
		entries = append(entries, RawEntry{
			Name:          name,
			Dir:           info.IsDir(),
			CanonicalPath: canonical,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Stat inspects a remote path. A missing path is not an error: it comes
// back as PathInfo{Exists: false} so callers can treat "folder is gone"
// as a designed empty result.
func (c *Client) Stat(ctx context.Context, smbPath string) (PathInfo, error) {
	share, err := c.ensureSession(ctx)
	if err != nil {
		return PathInfo{}, c.translate(err)
	}
	rel, err := c.relPath(smbPath)
	if err != nil {
		return PathInfo{}, err
	}
	info, err := share.WithContext(ctx).Stat(dirOrDot(rel))
	if err != nil {
		translated := c.translate(err)
		var fault *model.Fault
		if errors.As(translated, &fault) && fault.Kind == model.ShareOrPathNotFound {
			return PathInfo{Exists: false}, nil
		}
		return PathInfo{}, translated
	}
	return PathInfo{Exists: true, IsDir: info.IsDir(), Size: info.Size()}, nil
}

// OpenRead opens a remote file for streaming and returns its size. The
// caller owns the returned reader.
func (c *Client) OpenRead(ctx context.Context, smbPath string) (io.ReadCloser, int64, error) {
	share, err := c.ensureSession(ctx)
	if err != nil {
		return nil, 0, c.translate(err)
	}
	rel, err := c.relPath(smbPath)
	if err != nil {
		return nil, 0, err
	}
	f, err := share.WithContext(ctx).Open(rel)
	if err != nil {
		return nil, 0, c.translate(err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, c.translate(err)
	}
	return f, info.Size(), nil
}

// Close tears the session down. The client may be used again
// afterwards; the next operation redials.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropSessionLocked()
}

func (c *Client) ensureSession(ctx context.Context) (*smb2.Share, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.share != nil {
		return c.share, nil
	}

	addr := net.JoinHostPort(c.conn.Host, "445")
	dialer := &net.Dialer{Timeout: dialTimeout}
	netConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	initiator := &smb2.NTLMInitiator{}
	if !c.conn.Anonymous() {
		initiator.User = c.conn.Username
		initiator.Password = c.conn.Password
	}
	session, err := (&smb2.Dialer{Initiator: initiator}).DialContext(ctx, netConn)
	if err != nil {
		_ = netConn.Close()
		return nil, err
	}
	share, err := session.Mount(c.shareName())
	if err != nil {
		_ = session.Logoff()
		_ = netConn.Close()
		return nil, err
	}

	c.netConn = netConn
	c.session = session
	c.share = share
	c.log.Debug("smb session established",
		zap.String("host", c.conn.Host),
		zap.String("share", c.shareName()),
		zap.Bool("anonymous", c.conn.Anonymous()),
	)
	return share, nil
}

func (c *Client) dropSessionLocked() {
	if c.share != nil {
		_ = c.share.Umount()
		c.share = nil
	}
	if c.session != nil {
		_ = c.session.Logoff()
		c.session = nil
	}
	if c.netConn != nil {
		_ = c.netConn.Close()
		c.netConn = nil
	}
}

// shareName is the first segment of the configured share path; the
// rest addresses a directory inside the mounted share.
func (c *Client) shareName() string {
	trimmed := strings.Trim(c.conn.SharePath, "/")
	if name, _, found := strings.Cut(trimmed, "/"); found {
		return name
	}
	return trimmed
}

// relPath maps an smb:// path onto a path relative to the mounted
// share, using the backslash separators the wire protocol expects.
func (c *Client) relPath(smbPath string) (string, error) {
	rest := strings.TrimPrefix(smbPath, vpath.SMBScheme)
	if rest == smbPath {
		return "", &model.Fault{Kind: model.ShareOrPathNotFound, Message: fmt.Sprintf("not an smb path: %s", smbPath)}
	}
	_, remainder, found := strings.Cut(rest, "/")
	if !found {
		return "", &model.Fault{Kind: model.ShareOrPathNotFound, Message: "path has no share component"}
	}
	remainder = strings.Trim(remainder, "/")
	share := c.shareName()
	if remainder == share {
		return "", nil
	}
	if !strings.HasPrefix(remainder, share+"/") {
		return "", &model.Fault{Kind: model.ShareOrPathNotFound, Message: fmt.Sprintf("path outside share %s", share)}
	}
	rel := strings.TrimPrefix(remainder, share+"/")
	return strings.ReplaceAll(rel, "/", `\`), nil
}

// translate classifies a raw failure exactly once. Cancellation always
// propagates untouched; layers above only ever see *model.Fault.
func (c *Client) translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var fault *model.Fault
	if errors.As(err, &fault) {
		return err
	}
	var respErr *smb2.ResponseError
	if errors.As(err, &respErr) {
		classified := ClassifyError(respErr.Code, "", err)
		if classified.Kind == model.HostNotFound || classified.Kind == model.TransientNetwork {
			c.invalidate()
		}
		if classified.Kind == model.Unclassified {
			c.log.Warn("unhandled nt status",
				zap.String("status", fmt.Sprintf("0x%08x", respErr.Code)),
				zap.String("host", c.conn.Host),
			)
		}
		return classified
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		c.invalidate()
		return &model.Fault{Kind: model.HostNotFound, Message: model.HostNotFound.UserMessage(), Err: err}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		c.invalidate()
		return &model.Fault{Kind: model.TransientNetwork, Message: model.TransientNetwork.UserMessage(), Err: err}
	}
	return &model.Fault{Kind: model.Unclassified, Message: err.Error(), Err: err}
}

func (c *Client) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropSessionLocked()
}

func dirOrDot(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
