package main

import "sync"

// Channel holds everything to do with a channel.
//
// Channels are created lazily by the first JOIN that names them and are
// never garbage collected: an empty channel persists. Topic and Modes are
// stored but no command mutates them yet.
type Channel struct {
	mu sync.RWMutex

	// Name by convention begins with '#'.
	Name string

	// Current topic. May be blank.
	Topic string

	// Nickname to the member's session.
	Members map[string]*Session

	// Modes set on the channel. Stored but not interpreted.
	Modes map[string]struct{}
}

func newChannel(name string) *Channel {
	return &Channel{
		Name:    name,
		Members: make(map[string]*Session),
		Modes:   make(map[string]struct{}),
	}
}

// addMember inserts the nickname to session binding. Joining a channel the
// user is already in replaces the binding with the same session handle.
func (ch *Channel) addMember(nick string, sess *Session) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.Members[nick] = sess
}

// renameMember moves the membership entry for oldNick to newNick. No-op if
// oldNick is not a member.
func (ch *Channel) renameMember(oldNick, newNick string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	sess, ok := ch.Members[oldNick]
	if !ok {
		return
	}

	delete(ch.Members, oldNick)
	ch.Members[newNick] = sess
}

// memberNames returns the nicknames of every member. Order is unspecified.
func (ch *Channel) memberNames() []string {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	names := make([]string, 0, len(ch.Members))
	for nick := range ch.Members {
		names = append(names, nick)
	}
	return names
}

// membersExcept returns the session of every member other than nick.
func (ch *Channel) membersExcept(nick string) []*Session {
	ch.mu.RLock()
	defer ch.mu.RUnlock()

	sessions := make([]*Session, 0, len(ch.Members))
	for n, sess := range ch.Members {
		if n == nick {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions
}

// size returns the membership cardinality.
func (ch *Channel) size() int {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return len(ch.Members)
}
