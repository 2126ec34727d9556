package main

import (
	"fmt"
	"math/rand"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

// Server holds the state for a server.
//
// Everything global to the process lives in an instance of this struct
// rather than in package globals. The two registries are guarded by
// independent reader/writer locks. To stay deadlock free, locks are always
// acquired in the order channel registry, individual channel, user
// registry, individual session, and a session lock is never held while
// acquiring a channel lock.
type Server struct {
	Config Config

	log *logrus.Logger

	// usersMu guards users: nickname to session. Every accepted connection
	// has exactly one entry under its current nickname.
	usersMu sync.RWMutex
	users   map[string]*Session

	// channelsMu guards channels: channel name to channel.
	channelsMu sync.RWMutex
	channels   map[string]*Channel

	// TCP listener.
	listener net.Listener

	// When we close this channel, this indicates that we're shutting down.
	// Other goroutines can check if this channel is closed.
	shutdownChan chan struct{}

	// Tracks the accept loop and every connection's reader and writer so
	// wait can join them all.
	wg conc.WaitGroup
}

func newServer(cfg Config, logger *logrus.Logger) *Server {
	return &Server{
		Config:       cfg,
		log:          logger,
		users:        make(map[string]*Session),
		channels:     make(map[string]*Channel),
		shutdownChan: make(chan struct{}),
	}
}

// start opens the TCP port and spawns the accept loop. It returns once the
// server is listening; use wait to block until shutdown.
func (s *Server) start() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.Config.ListenHost,
		s.Config.ListenPort))
	if err != nil {
		return fmt.Errorf("unable to listen: %s", err)
	}
	s.listener = ln

	s.log.WithFields(logrus.Fields{
		"server": s.Config.ServerName,
		"addr":   ln.Addr().String(),
	}).Info("Listening")

	s.wg.Go(s.acceptLoop)

	return nil
}

// wait blocks until every server goroutine finishes.
func (s *Server) wait() {
	s.wg.Wait()
}

// isShuttingDown reports whether shutdown started.
func (s *Server) isShuttingDown() bool {
	// No messages get sent to this channel, so if we receive a message on
	// it, then we know the channel was closed.
	select {
	case <-s.shutdownChan:
		return true
	default:
		return false
	}
}

// shutdown starts server shutdown.
//
// It stops the listener and closes every session's outbound queue. Each
// writer drains what it has and closes its socket, which in turn unblocks
// that connection's reader.
func (s *Server) shutdown() {
	s.log.Info("Server shutdown initiated.")

	close(s.shutdownChan)

	if err := s.listener.Close(); err != nil {
		s.log.Warnf("Problem closing TCP listener: %s", err)
	}

	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	for _, sess := range s.users {
		sess.queue.close()
	}
}

// acceptLoop accepts TCP connections and spawns a connection goroutine for
// each. Accept errors are logged and the loop continues; only shutdown ends
// it.
func (s *Server) acceptLoop() {
	id := uint64(0)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.isShuttingDown() {
				break
			}
			s.log.Warnf("Failed to accept connection: %s", err)
			continue
		}

		id++
		connID := id
		s.wg.Go(func() {
			s.handleConn(conn, connID)
		})
	}

	s.log.Debug("Connection accepter shutting down.")
}

// handleConn runs one connection from accept to end of stream.
//
// It creates the session with its outbound queue, registers it under a
// synthetic guest nickname, spawns the writer goroutine, and then reads,
// parses, and dispatches lines until the read half errors out.
//
// The guest nickname is guest<N> with N uniform in [1, 9999]. There is no
// uniqueness check: a collision overwrites the prior registry entry. Known
// limitation.
func (s *Server) handleConn(nc net.Conn, id uint64) {
	c := NewConn(nc)

	nick := fmt.Sprintf("guest%d", rand.Intn(9999)+1)
	sess := NewSession(id, nick, newSendQueue())
	s.addClient(nick, sess)

	clog := s.log.WithFields(logrus.Fields{
		"client": id,
		"remote": c.RemoteAddr().String(),
		"nick":   nick,
	})
	clog.Info("Accepted connection")

	s.wg.Go(func() {
		s.writeLoop(c, sess)
	})

	for {
		line, err := c.ReadLine()
		if err != nil {
			clog.Debugf("Client read ended: %s", err)
			break
		}

		s.handleCommand(sess, parseCommand(line))
	}

	// Closing the queue ends the writer, which closes the socket. The
	// session stays in the registry and in its channels. Known limitation.
	sess.queue.close()

	clog.Debug("Reader shutting down.")
}

// writeLoop dequeues outbound lines and writes them to the socket until the
// queue is closed and drained. It is the only writer to the socket, so
// dispatchers never block on I/O.
func (s *Server) writeLoop(c Conn, sess *Session) {
	for {
		line, ok := sess.queue.dequeue()
		if !ok {
			break
		}

		if err := c.Write(line); err != nil {
			s.log.WithField("client", sess.id).Debugf("Client write ended: %s",
				err)
			sess.queue.close()
			break
		}
	}

	if err := c.Close(); err != nil {
		s.log.WithField("client", sess.id).Debugf("Problem closing socket: %s",
			err)
	}

	s.log.WithField("client", sess.id).Debug("Writer shutting down.")
}

// addClient inserts the session into the user registry under nick.
func (s *Server) addClient(nick string, sess *Session) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	s.users[nick] = sess
}

// removeClient removes the registry entry for nick.
func (s *Server) removeClient(nick string) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	delete(s.users, nick)
}

// changeNick renames the registry entry for oldNick to newNick, atomically
// with respect to other registry observers. No-op if oldNick is absent.
func (s *Server) changeNick(oldNick, newNick string) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	sess, ok := s.users[oldNick]
	if !ok {
		return
	}

	delete(s.users, oldNick)
	s.users[newNick] = sess
}

// lookupUser returns the session registered under nick.
func (s *Server) lookupUser(nick string) (*Session, bool) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	sess, ok := s.users[nick]
	return sess, ok
}

// usersExcept returns every registered session other than nick's.
func (s *Server) usersExcept(nick string) []*Session {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	sessions := make([]*Session, 0, len(s.users))
	for n, sess := range s.users {
		if n == nick {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions
}

// lookupChannel returns the channel registered under name.
func (s *Server) lookupChannel(name string) (*Channel, bool) {
	s.channelsMu.RLock()
	defer s.channelsMu.RUnlock()
	ch, ok := s.channels[name]
	return ch, ok
}

// getOrCreateChannel returns the channel registered under name, creating it
// if this is the first JOIN to reference it.
func (s *Server) getOrCreateChannel(name string) *Channel {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	ch, ok := s.channels[name]
	if !ok {
		ch = newChannel(name)
		s.channels[name] = ch
	}
	return ch
}

// allChannels returns a snapshot of every channel.
func (s *Server) allChannels() []*Channel {
	s.channelsMu.RLock()
	defer s.channelsMu.RUnlock()

	channels := make([]*Channel, 0, len(s.channels))
	for _, ch := range s.channels {
		channels = append(channels, ch)
	}
	return channels
}
