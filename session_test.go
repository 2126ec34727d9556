package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionDefaults(t *testing.T) {
	sess := NewSession(1, "guest42", newSendQueue())

	assert.Equal(t, "guest42", sess.Nick())
	assert.Equal(t, "guest42", sess.Username())
	assert.Equal(t, Unregistered, sess.registrationState())
	assert.False(t, sess.hasCapability(CapMultiPrefix))
}

func TestHandleCapabilityLs(t *testing.T) {
	sess := NewSession(1, "guest1", newSendQueue())

	reply := sess.handleCapability(Command{Kind: CmdCapLs})
	assert.Equal(t, "CAP * LS :multi-prefix sasl echo-message\r\n", reply)
}

func TestHandleCapabilityReq(t *testing.T) {
	tests := []struct {
		name    string
		caps    []string
		reply   string
		enabled []Capability
	}{
		{
			"all supported",
			[]string{":multi-prefix", ":sasl", ":echo-message"},
			"CAP * ACK ::multi-prefix :sasl :echo-message\r\n",
			[]Capability{CapMultiPrefix, CapSASL, CapEchoMessage},
		},
		{
			"mixed",
			[]string{":multi-prefix", "bogus", ":sasl"},
			"CAP * ACK ::multi-prefix :sasl\r\n",
			[]Capability{CapMultiPrefix, CapSASL},
		},
		{
			// Labels only match with their leading colon attached.
			"missing colon",
			[]string{"multi-prefix"},
			"CAP * NAK :No valid capabilities\r\n",
			nil,
		},
		{
			"none supported",
			[]string{"away-notify"},
			"CAP * NAK :No valid capabilities\r\n",
			nil,
		},
		{
			"empty request",
			[]string{},
			"CAP * NAK :No valid capabilities\r\n",
			nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sess := NewSession(1, "guest1", newSendQueue())

			reply := sess.handleCapability(Command{Kind: CmdCapReq,
				Caps: test.caps})
			assert.Equal(t, test.reply, reply)

			for _, c := range test.enabled {
				assert.True(t, sess.hasCapability(c))
			}
		})
	}
}

func TestHandleCapabilityEnd(t *testing.T) {
	sess := NewSession(1, "guest1", newSendQueue())

	reply := sess.handleCapability(Command{Kind: CmdCapEnd})
	assert.Equal(t, "", reply)
	assert.Equal(t, Registered, sess.registrationState())
}

func TestHandleCapabilityInvalidCommand(t *testing.T) {
	sess := NewSession(1, "guest1", newSendQueue())

	reply := sess.handleCapability(Command{Kind: CmdNick, Target: "alice"})
	assert.Equal(t, "CAP * NAK :Invalid command\r\n", reply)
	assert.Equal(t, Unregistered, sess.registrationState())
}
