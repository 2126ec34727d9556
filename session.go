package main

import (
	"fmt"
	"strings"
	"sync"
)

// Capability is an optional protocol extension a client may request during
// IRCv3 CAP negotiation.
type Capability int

// The capabilities we advertise. SASL and echo-message are labels only: we
// advertise them but no command executes them yet.
const (
	CapMultiPrefix Capability = iota
	CapSASL
	CapEchoMessage
)

// RegistrationState tracks where a session is in connection registration.
type RegistrationState int

const (
	// Unregistered means the session has not completed capability
	// negotiation.
	Unregistered RegistrationState = iota

	// Registered means the session ended negotiation with CAP END and is a
	// full participant.
	Registered

	// Authenticated is reserved for a future SASL flow. Nothing transitions
	// a session here yet.
	Authenticated
)

// supportedCaps maps CAP REQ labels to capabilities. The request line is
// tokenized on whitespace, so each label arrives with its leading colon
// attached and we match it colon and all.
var supportedCaps = map[string]Capability{
	":multi-prefix": CapMultiPrefix,
	":sasl":         CapSASL,
	":echo-message": CapEchoMessage,
}

// Session holds the state for one client connection.
//
// A session is shared between its reader goroutine, its writer goroutine,
// the user registry, and every channel the user has joined. The mutex guards
// the mutable fields; the queue has its own lock and is safe to use without
// holding ours.
type Session struct {
	mu sync.RWMutex

	nick     string
	username string
	caps     map[Capability]struct{}
	state    RegistrationState

	// queue is the producer end of the session's outbound FIFO. The writer
	// goroutine drains it to the socket.
	queue *sendQueue

	// Locally unique identifier, for logging.
	id uint64
}

// NewSession creates a Session. The username starts out equal to the
// assigned nickname until a USER command replaces it.
func NewSession(id uint64, nick string, queue *sendQueue) *Session {
	return &Session{
		id:       id,
		nick:     nick,
		username: nick,
		caps:     make(map[Capability]struct{}),
		state:    Unregistered,
		queue:    queue,
	}
}

func (sess *Session) String() string {
	return fmt.Sprintf("%d %s", sess.id, sess.Nick())
}

// Nick returns the session's current nickname.
func (sess *Session) Nick() string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.nick
}

func (sess *Session) setNick(nick string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.nick = nick
}

func (sess *Session) setUsername(username string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.username = username
}

// Username returns the session's username.
func (sess *Session) Username() string {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.username
}

// registrationState returns where the session is in registration.
func (sess *Session) registrationState() RegistrationState {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.state
}

// hasCapability reports whether the client enabled the capability.
func (sess *Session) hasCapability(c Capability) bool {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	_, ok := sess.caps[c]
	return ok
}

// send enqueues one wire line for delivery to the client. It never blocks.
// If the connection's writer is already gone the line is dropped.
func (sess *Session) send(line string) {
	sess.queue.enqueue(line)
}

// handleCapability processes one of the CAP commands against the session
// and returns the reply line to send, or "" for no reply.
//
// CAP LS advertises the supported set. CAP REQ enables each requested
// capability we support and ACKs the enabled labels, or NAKs when none
// matched. CAP END completes registration and is silent. Any other command
// handed to us is NAKed as invalid.
func (sess *Session) handleCapability(cmd Command) string {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch cmd.Kind {
	case CmdCapLs:
		return "CAP * LS :multi-prefix sasl echo-message\r\n"

	case CmdCapReq:
		var acked []string
		for _, label := range cmd.Caps {
			c, ok := supportedCaps[label]
			if !ok {
				continue
			}
			sess.caps[c] = struct{}{}
			acked = append(acked, label)
		}

		if len(acked) == 0 {
			return "CAP * NAK :No valid capabilities\r\n"
		}
		return "CAP * ACK :" + strings.Join(acked, " ") + "\r\n"

	case CmdCapEnd:
		sess.state = Registered
		return ""
	}

	return "CAP * NAK :Invalid command\r\n"
}
