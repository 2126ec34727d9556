package main

import (
	"fmt"
	"strings"
)

// CommandKind identifies which client command a line parsed to.
type CommandKind int

const (
	// CmdUnknown is any line we could not recognize. Raw holds the line.
	CmdUnknown CommandKind = iota

	CmdCapLs
	CmdCapReq
	CmdCapEnd
	CmdNick
	CmdUser
	CmdJoin
	CmdPrivmsg
	CmdPing
	CmdNames
	CmdQuit
)

// Command is one parsed client command.
//
// Which fields are set depends on Kind. Target holds the nickname (NICK),
// the username (USER), the channel (JOIN, NAMES), or the message target
// (PRIVMSG). Text holds the PRIVMSG body or the PING token. Caps holds the
// labels of a CAP REQ. Raw holds the original line for CmdUnknown.
type Command struct {
	Kind   CommandKind
	Target string
	Text   string
	Caps   []string
	Raw    string
}

// parseCommand parses one line (without its line terminator) into a
// Command.
//
// The line is split on runs of ASCII whitespace. The verb and the CAP
// subcommand match case insensitively; arguments are case sensitive.
// Anything malformed parses to CmdUnknown. The function is total: every
// input line produces exactly one Command.
func parseCommand(line string) Command {
	unknown := Command{Kind: CmdUnknown, Raw: line}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return unknown
	}

	switch strings.ToUpper(tokens[0]) {
	case "CAP":
		if len(tokens) < 2 {
			return unknown
		}
		switch strings.ToUpper(tokens[1]) {
		case "LS":
			return Command{Kind: CmdCapLs}
		case "END":
			return Command{Kind: CmdCapEnd}
		case "REQ":
			return Command{Kind: CmdCapReq, Caps: tokens[2:]}
		}
		return unknown

	case "NICK":
		if len(tokens) < 2 {
			return unknown
		}
		return Command{Kind: CmdNick, Target: tokens[1]}

	case "USER":
		if len(tokens) < 2 {
			return unknown
		}
		return Command{Kind: CmdUser, Target: tokens[1]}

	case "JOIN":
		if len(tokens) < 2 {
			return unknown
		}
		return Command{Kind: CmdJoin, Target: tokens[1]}

	case "PING":
		if len(tokens) < 2 {
			return unknown
		}
		return Command{Kind: CmdPing, Text: tokens[1]}

	case "PRIVMSG":
		if len(tokens) < 3 {
			return unknown
		}
		// Rebuilding the body from tokens collapses whitespace runs into
		// single spaces. A minor deviation from raw IRC framing, kept as is.
		text := strings.Join(tokens[2:], " ")
		text = strings.TrimSpace(strings.TrimLeft(text, ":"))
		if text == "" {
			return unknown
		}
		return Command{Kind: CmdPrivmsg, Target: tokens[1], Text: text}

	case "NAMES":
		cmd := Command{Kind: CmdNames}
		if len(tokens) > 1 {
			cmd.Target = tokens[1]
		}
		return cmd

	case "QUIT":
		return Command{Kind: CmdQuit}
	}

	return unknown
}

// handleCommand takes action based on a client's command.
//
// Every send here is an enqueue onto a recipient's outbound queue; the
// recipient's writer goroutine transmits the line later. Enqueues to a dead
// connection are silently dropped.
func (s *Server) handleCommand(sess *Session, cmd Command) {
	switch cmd.Kind {
	case CmdCapLs, CmdCapReq, CmdCapEnd:
		s.capCommand(sess, cmd)

	case CmdNick:
		s.nickCommand(sess, cmd.Target)

	case CmdUser:
		// Set the username. No reply.
		sess.setUsername(cmd.Target)

	case CmdJoin:
		s.joinCommand(sess, cmd.Target)

	case CmdPrivmsg:
		s.privmsgCommand(sess, cmd.Target, cmd.Text)

	case CmdPing:
		s.pingCommand(sess, cmd.Text)

	case CmdNames:
		s.namesCommand(sess, cmd.Target)

	case CmdQuit:
		s.quitCommand(sess)

	case CmdUnknown:
		s.log.WithField("client", sess.id).Infof("Unknown command: %s", cmd.Raw)
	}
}

// capCommand runs capability negotiation against the session and sends the
// reply, if any, back to the session itself.
func (s *Server) capCommand(sess *Session, cmd Command) {
	if reply := sess.handleCapability(cmd); reply != "" {
		sess.send(reply)
	}
}

// nickCommand changes the session's nickname.
//
// The rename covers both registries: the user registry entry moves to the
// new nickname, and every channel membership that referenced the old
// nickname is reinserted under the new one pointing at the same session.
// The client gets a welcome numeric; everyone else gets the NICK change.
func (s *Server) nickCommand(sess *Session, newNick string) {
	oldNick := sess.Nick()

	s.changeNick(oldNick, newNick)

	for _, ch := range s.allChannels() {
		ch.renameMember(oldNick, newNick)
	}

	sess.setNick(newNick)

	sess.send(fmt.Sprintf(":server 001 %s :Welcome!\r\n", newNick))

	line := fmt.Sprintf(":%s NICK %s\r\n", oldNick, newNick)
	for _, other := range s.usersExcept(newNick) {
		other.send(line)
	}
}

// joinCommand adds the session to a channel, creating the channel if this
// is the first JOIN to name it.
//
// The joining client gets, in order: its own JOIN, the topic numeric, the
// name list, and the end of names. Every other member gets the JOIN.
func (s *Server) joinCommand(sess *Session, channel string) {
	nick := sess.Nick()

	ch := s.getOrCreateChannel(channel)
	ch.addMember(nick, sess)

	sess.send(fmt.Sprintf(":%s JOIN %s\r\n", nick, ch.Name))
	sess.send(formatReply(ReplyTopic, ReplyParams{
		Client:  nick,
		Channel: ch.Name,
	}))
	sess.send(formatReply(ReplyNamReply, ReplyParams{
		Client:  nick,
		Channel: ch.Name,
		Message: strings.Join(ch.memberNames(), " "),
	}))
	sess.send(formatReply(ReplyEndOfNames, ReplyParams{
		Client:  nick,
		Channel: ch.Name,
	}))

	line := fmt.Sprintf(":%s JOIN %s\r\n", nick, ch.Name)
	for _, member := range ch.membersExcept(nick) {
		member.send(line)
	}
}

// privmsgCommand delivers a message to a channel or to a single user.
//
// A target starting with '#' fans out to every channel member except the
// sender. Anything else is a direct message to that nickname. An unknown
// target is silently dropped; no numeric error goes back.
func (s *Server) privmsgCommand(sess *Session, target, text string) {
	nick := sess.Nick()
	line := fmt.Sprintf(":%s PRIVMSG %s :%s\r\n", nick, target, text)

	if strings.HasPrefix(target, "#") {
		ch, ok := s.lookupChannel(target)
		if !ok {
			s.log.WithField("client", sess.id).Debugf(
				"PRIVMSG to unknown channel: %s", target)
			return
		}

		for _, member := range ch.membersExcept(nick) {
			member.send(line)
		}
		return
	}

	recipient, ok := s.lookupUser(target)
	if !ok {
		s.log.WithField("client", sess.id).Debugf("PRIVMSG to unknown nick: %s",
			target)
		return
	}
	recipient.send(line)
}

// pingCommand answers a client PING with a PONG carrying the same token.
func (s *Server) pingCommand(sess *Session, token string) {
	sess.send(fmt.Sprintf("PONG server %s\r\n", token))
}

// namesCommand sends name list numerics.
//
// With a channel argument we list that channel, or nothing at all if it
// does not exist. Without one we list every channel, then a single end of
// names with * as the channel placeholder.
func (s *Server) namesCommand(sess *Session, channel string) {
	nick := sess.Nick()

	if channel != "" {
		ch, ok := s.lookupChannel(channel)
		if !ok {
			return
		}

		sess.send(formatReply(ReplyNamReply, ReplyParams{
			Client:  nick,
			Channel: ch.Name,
			Message: strings.Join(ch.memberNames(), " "),
		}))
		sess.send(formatReply(ReplyEndOfNames, ReplyParams{
			Client:  nick,
			Channel: ch.Name,
		}))
		return
	}

	for _, ch := range s.allChannels() {
		sess.send(formatReply(ReplyNamReply, ReplyParams{
			Client:  nick,
			Channel: ch.Name,
			Message: strings.Join(ch.memberNames(), " "),
		}))
	}
	sess.send(formatReply(ReplyEndOfNames, ReplyParams{
		Client:  nick,
		Channel: "*",
	}))
}

// quitCommand acknowledges a QUIT to the session itself.
//
// The session is not removed from the registry or from channel memberships,
// and other members are not told. Known limitation.
func (s *Server) quitCommand(sess *Session) {
	sess.send(fmt.Sprintf(":%s QUIT\r\n", sess.Nick()))
}
