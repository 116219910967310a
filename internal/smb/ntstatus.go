package smb

// NT status codes the classifier recognizes, per MS-ERREF.
const (
	statusLogonFailure       uint32 = 0xC000006D
	statusWrongPassword      uint32 = 0xC000006A
	statusAccountDisabled    uint32 = 0xC0000072
	statusPasswordExpired    uint32 = 0xC0000071
	statusAccountRestriction uint32 = 0xC000006E
	statusAccountLockedOut   uint32 = 0xC0000234

	statusNoSuchDevice      uint32 = 0xC000000E
	statusConnectionRefused uint32 = 0xC0000236

	statusBadNetworkName     uint32 = 0xC00000CC
	statusObjectPathNotFound uint32 = 0xC000003A
	statusNoSuchFile         uint32 = 0xC000000F
	statusObjectNameNotFound uint32 = 0xC0000034
	statusObjectNameInvalid  uint32 = 0xC0000033

	statusAccessDenied uint32 = 0xC0000022

	statusPipeNotAvailable uint32 = 0xC00000AC
	statusPipeDisconnected uint32 = 0xC00000B0
	statusPipeBroken       uint32 = 0xC000014B
	statusSharingViolation uint32 = 0xC0000043
)

// canonicalMessages holds human-readable text for codes we know about,
// used when the raw error carries no usable message of its own.
var canonicalMessages = map[uint32]string{
	statusLogonFailure:       "logon failure",
	statusWrongPassword:      "wrong password",
	statusAccountDisabled:    "account disabled",
	statusPasswordExpired:    "password expired",
	statusAccountRestriction: "account restriction",
	statusAccountLockedOut:   "account locked out",
	statusNoSuchDevice:       "no such device",
	statusConnectionRefused:  "connection refused",
	statusBadNetworkName:     "bad network name",
	statusObjectPathNotFound: "object path not found",
	statusNoSuchFile:         "no such file",
	statusObjectNameNotFound: "object name not found",
	statusObjectNameInvalid:  "object name invalid",
	statusAccessDenied:       "access denied",
	statusPipeNotAvailable:   "pipe not available",
	statusPipeDisconnected:   "pipe disconnected",
	statusPipeBroken:         "pipe broken",
	statusSharingViolation:   "sharing violation",
}
