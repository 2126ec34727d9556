package main

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReplyExactTemplates(t *testing.T) {
	tests := []struct {
		code   ReplyCode
		params ReplyParams
		output string
	}{
		{
			ReplyTopic,
			ReplyParams{Client: "alice", Channel: "#room"},
			":server 332 alice #room :STUBBED_VALUE\r\n",
		},
		{
			ReplyNamReply,
			ReplyParams{Client: "alice", Channel: "#room", Message: "alice"},
			":server 353 alice = #room :alice\r\n",
		},
		{
			ReplyNamReply,
			ReplyParams{Client: "alice", Channel: "#room", Message: "alice bob"},
			":server 353 alice = #room :alice bob\r\n",
		},
		{
			ReplyEndOfNames,
			ReplyParams{Client: "alice", Channel: "#room"},
			":server 366 alice #room :End of /NAMES list\r\n",
		},
		{
			ReplyEndOfNames,
			ReplyParams{Client: "alice", Channel: "*"},
			":server 366 alice * :End of /NAMES list\r\n",
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.output, formatReply(test.code, test.params))
	}
}

func TestFormatReplyStubSlots(t *testing.T) {
	// Codes pad to three digits.
	assert.Equal(t,
		":server 001 alice :Welcome to the STUBBED_VALUE Network, alice\r\n",
		formatReply(ReplyWelcome, ReplyParams{Client: "alice"}))

	// An optional slot with no value falls back to the stub.
	assert.Equal(t, ":server 401 alice STUBBED_VALUE :No such nick/channel\r\n",
		formatReply(ErrNoSuchNick, ReplyParams{Client: "alice"}))
	assert.Equal(t, ":server 401 alice bob :No such nick/channel\r\n",
		formatReply(ErrNoSuchNick, ReplyParams{Client: "alice", Nick: "bob"}))

	// Counts render as integers when set.
	assert.Equal(t, ":server 252 alice 5 :operator(s) online\r\n",
		formatReply(ReplyLuserOp, ReplyParams{Client: "alice", Count: 5}))

	// A code with no template gets the prefix alone.
	assert.Equal(t, ":server 300 alice\r\n",
		formatReply(ReplyNone, ReplyParams{Client: "alice"}))
}

// Every catalog entry must expand cleanly: prefixed with the code and
// client, terminated with CRLF, and with no unexpanded slot left behind.
func TestReplyCatalogExpands(t *testing.T) {
	for code := range replyTemplates {
		line := formatReply(code, ReplyParams{Client: "alice"})

		prefix := fmt.Sprintf(":server %03d alice", int(code))
		assert.True(t, strings.HasPrefix(line, prefix), "%d: %q", int(code), line)
		assert.True(t, strings.HasSuffix(line, "\r\n"), "%d: %q", int(code), line)
		assert.NotContains(t, line, "${", "%d: %q", int(code), line)
		assert.NotContains(t, line, "\x00", "%d: %q", int(code), line)
	}
}
