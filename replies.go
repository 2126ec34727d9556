package main

import (
	"fmt"
	"os"
	"strconv"
)

// ReplyCode is a three digit IRC numeric reply code, 001 through 999.
type ReplyCode int

// The numeric replies we know how to format. Only a handful are exercised
// by the command surface; the rest form a stub catalog for future commands.
const (
	ReplyWelcome        ReplyCode = 1
	ReplyYourHost       ReplyCode = 2
	ReplyCreated        ReplyCode = 3
	ReplyMyInfo         ReplyCode = 4
	ReplyISupport       ReplyCode = 5
	ReplyBounce         ReplyCode = 10
	ReplyStatsCommands  ReplyCode = 212
	ReplyEndOfStats     ReplyCode = 219
	ReplyUModeIs        ReplyCode = 221
	ReplyStatsUptime    ReplyCode = 242
	ReplyLuserClient    ReplyCode = 251
	ReplyLuserOp        ReplyCode = 252
	ReplyLuserUnknown   ReplyCode = 253
	ReplyLuserChannels  ReplyCode = 254
	ReplyLuserMe        ReplyCode = 255
	ReplyAdminMe        ReplyCode = 256
	ReplyAdminLoc1      ReplyCode = 257
	ReplyAdminLoc2      ReplyCode = 258
	ReplyAdminEmail     ReplyCode = 259
	ReplyTryAgain       ReplyCode = 263
	ReplyLocalUsers     ReplyCode = 265
	ReplyGlobalUsers    ReplyCode = 266
	ReplyWhoisCertFP    ReplyCode = 276
	ReplyNone           ReplyCode = 300
	ReplyAway           ReplyCode = 301
	ReplyUserHost       ReplyCode = 302
	ReplyUnAway         ReplyCode = 305
	ReplyNowAway        ReplyCode = 306
	ReplyWhoisRegNick   ReplyCode = 307
	ReplyWhoisUser      ReplyCode = 311
	ReplyWhoisServer    ReplyCode = 312
	ReplyWhoisOperator  ReplyCode = 313
	ReplyWhoWasUser     ReplyCode = 314
	ReplyEndOfWho       ReplyCode = 315
	ReplyWhoisIdle      ReplyCode = 317
	ReplyEndOfWhois     ReplyCode = 318
	ReplyWhoisChannels  ReplyCode = 319
	ReplyWhoisSpecial   ReplyCode = 320
	ReplyListStart      ReplyCode = 321
	ReplyList           ReplyCode = 322
	ReplyListEnd        ReplyCode = 323
	ReplyChannelModeIs  ReplyCode = 324
	ReplyCreationTime   ReplyCode = 329
	ReplyWhoisAccount   ReplyCode = 330
	ReplyNoTopic        ReplyCode = 331
	ReplyTopic          ReplyCode = 332
	ReplyTopicWhoTime   ReplyCode = 333
	ReplyInviteList     ReplyCode = 336
	ReplyEndOfInviteLst ReplyCode = 337
	ReplyWhoisActually  ReplyCode = 338
	ReplyInviting       ReplyCode = 341
	ReplyInvexList      ReplyCode = 346
	ReplyEndOfInvexList ReplyCode = 347
	ReplyExceptList     ReplyCode = 348
	ReplyEndOfExceptLst ReplyCode = 349
	ReplyVersion        ReplyCode = 351
	ReplyWhoReply       ReplyCode = 352
	ReplyNamReply       ReplyCode = 353
	ReplyLinks          ReplyCode = 364
	ReplyEndOfLinks     ReplyCode = 365
	ReplyEndOfNames     ReplyCode = 366
	ReplyBanList        ReplyCode = 367
	ReplyEndOfBanList   ReplyCode = 368
	ReplyEndOfWhoWas    ReplyCode = 369
	ReplyInfo           ReplyCode = 371
	ReplyMOTD           ReplyCode = 372
	ReplyEndOfInfo      ReplyCode = 374
	ReplyMOTDStart      ReplyCode = 375
	ReplyEndOfMOTD      ReplyCode = 376
	ReplyWhoisHost      ReplyCode = 378
	ReplyWhoisModes     ReplyCode = 379
	ReplyYoureOper      ReplyCode = 381
	ReplyRehashing      ReplyCode = 382
	ReplyTime           ReplyCode = 391
	ErrUnknownError     ReplyCode = 400
	ErrNoSuchNick       ReplyCode = 401
	ErrNoSuchServer     ReplyCode = 402
	ErrNoSuchChannel    ReplyCode = 403
	ErrCannotSendToChan ReplyCode = 404
	ErrTooManyChannels  ReplyCode = 405
	ErrWasNoSuchNick    ReplyCode = 406
	ErrNoOrigin         ReplyCode = 409
	ErrNoRecipient      ReplyCode = 411
	ErrNoTextToSend     ReplyCode = 412
	ErrInputTooLong     ReplyCode = 417
	ErrUnknownCommand   ReplyCode = 421
	ErrNoMOTD           ReplyCode = 422
	ErrNoNicknameGiven  ReplyCode = 431
	ErrErroneusNickname ReplyCode = 432
	ErrNicknameInUse    ReplyCode = 433
	ErrNickCollision    ReplyCode = 436
	ErrUserNotInChannel ReplyCode = 441
	ErrNotOnChannel     ReplyCode = 442
	ErrUserOnChannel    ReplyCode = 443
	ErrNotRegistered    ReplyCode = 451
	ErrNeedMoreParams   ReplyCode = 461
	ErrAlreadyRegd      ReplyCode = 462
	ErrPasswdMismatch   ReplyCode = 464
	ErrYoureBannedCreep ReplyCode = 465
	ErrChannelIsFull    ReplyCode = 471
	ErrUnknownMode      ReplyCode = 472
	ErrInviteOnlyChan   ReplyCode = 473
	ErrBannedFromChan   ReplyCode = 474
	ErrBadChannelKey    ReplyCode = 475
	ErrBadChanMask      ReplyCode = 476
	ErrNoPrivileges     ReplyCode = 481
	ErrChanOPrivsNeeded ReplyCode = 482
	ErrCantKillServer   ReplyCode = 483
	ErrNoOperHost       ReplyCode = 491
	ErrUModeUnknownFlag ReplyCode = 501
	ErrUsersDontMatch   ReplyCode = 502
	ErrHelpNotFound     ReplyCode = 524
	ErrInvalidKey       ReplyCode = 525
	ReplyStartTLS       ReplyCode = 670
	ReplyWhoisSecure    ReplyCode = 671
	ErrStartTLS         ReplyCode = 691
	ErrInvalidModeParam ReplyCode = 696
	ReplyHelpStart      ReplyCode = 704
	ReplyHelpTxt        ReplyCode = 705
	ReplyEndOfHelp      ReplyCode = 706
	ErrNoPrivs          ReplyCode = 723
	ReplyLoggedIn       ReplyCode = 900
	ReplyLoggedOut      ReplyCode = 901
	ErrNickLocked       ReplyCode = 902
	ReplySASLSuccess    ReplyCode = 903
	ErrSASLFail         ReplyCode = 904
	ErrSASLTooLong      ReplyCode = 905
	ErrSASLAborted      ReplyCode = 906
	ErrSASLAlready      ReplyCode = 907
	ReplySASLMechs      ReplyCode = 908
)

// stubValue fills template slots that no caller provides a value for.
const stubValue = "STUBBED_VALUE"

// ReplyParams is the parameter bag for formatReply. Client is required;
// every other field is optional and falls back to stubValue when a template
// names its slot.
type ReplyParams struct {
	Client  string
	Channel string
	Nick    string
	Host    string
	Message string
	Server  string
	Modes   string
	Count   int
	Date    string
}

// slot resolves one template slot name to its value.
func (p ReplyParams) slot(name string) string {
	switch name {
	case "client":
		if p.Client != "" {
			return p.Client
		}
	case "channel":
		if p.Channel != "" {
			return p.Channel
		}
	case "nick":
		if p.Nick != "" {
			return p.Nick
		}
	case "host":
		if p.Host != "" {
			return p.Host
		}
	case "message":
		if p.Message != "" {
			return p.Message
		}
	case "server":
		if p.Server != "" {
			return p.Server
		}
	case "modes":
		if p.Modes != "" {
			return p.Modes
		}
	case "count":
		if p.Count != 0 {
			return strconv.Itoa(p.Count)
		}
	case "date":
		if p.Date != "" {
			return p.Date
		}
	}
	return stubValue
}

// replyTemplates holds what follows ":server <code> <client>" on each
// reply's wire line. Slots expand from the parameter bag; ${stub} always
// expands to stubValue. The trailing comment on each entry is the reply's
// RFC parameter shape.
var replyTemplates = map[ReplyCode]string{
	ReplyWelcome:        ":Welcome to the ${stub} Network, ${client}",                // "<client> :Welcome to the <networkname> Network, <nick>[!<user>@<host>]"
	ReplyYourHost:       ":Your host is ${server}, running version ${stub}",          // "<client> :Your host is <servername>, running version <version>"
	ReplyCreated:        ":This server was created ${date}",                          // "<client> :This server was created <datetime>"
	ReplyMyInfo:         "${server} ${stub} ${stub} ${stub}",                         // "<client> <servername> <version> <available user modes> <available channel modes>"
	ReplyISupport:       "${stub} :are supported by this server",                     // "<client> <1-13 tokens> :are supported by this server"
	ReplyBounce:         "${host} ${stub} :${message}",                               // "<client> <hostname> <port> :<info>"
	ReplyStatsCommands:  "${stub} ${count}",                                          // "<client> <command> <count>"
	ReplyEndOfStats:     "${stub} :End of STATS report",                              // "<client> <command> :End of STATS report"
	ReplyUModeIs:        "${modes}",                                                  // "<client> <usermodes>"
	ReplyStatsUptime:    ":Server Up ${date}",                                        // "<client> :Server Up <days> days <hours>:<minutes>:<seconds>"
	ReplyLuserClient:    ":There are ${count} users and ${stub} invisible on ${stub} servers", // "<client> :There are <u> users and <i> invisible on <s> servers"
	ReplyLuserOp:        "${count} :operator(s) online",                              // "<client> <ops> :operator(s) online"
	ReplyLuserUnknown:   "${count} :unknown connection(s)",                           // "<client> <connections> :unknown connection(s)"
	ReplyLuserChannels:  "${count} :channels formed",                                 // "<client> <channels> :channels formed"
	ReplyLuserMe:        ":I have ${count} clients and ${stub} servers",              // "<client> :I have <c> clients and <s> servers"
	ReplyAdminMe:        "${server} :Administrative info",                            // "<client> <server> :Administrative info"
	ReplyAdminLoc1:      ":${message}",                                               // "<client> :<info>"
	ReplyAdminLoc2:      ":${message}",                                               // "<client> :<info>"
	ReplyAdminEmail:     ":${message}",                                               // "<client> :<info>"
	ReplyTryAgain:       "${stub} :Please wait a while and try again.",               // "<client> <command> :Please wait a while and try again."
	ReplyLocalUsers:     "${count} ${stub} :Current local users ${count}, max ${stub}",  // "<client> [<u> <m>] :Current local users <u>, max <m>"
	ReplyGlobalUsers:    "${count} ${stub} :Current global users ${count}, max ${stub}", // "<client> [<u> <m>] :Current global users <u>, max <m>"
	ReplyWhoisCertFP:    "${nick} :has client certificate fingerprint ${stub}",       // "<client> <nick> :has client certificate fingerprint <fingerprint>"
	ReplyAway:           "${nick} :${message}",                                       // "<client> <nick> :<message>"
	ReplyUserHost:       ":${message}",                                               // "<client> :[<reply>{ <reply>}]"
	ReplyUnAway:         ":You are no longer marked as being away",                   // "<client> :You are no longer marked as being away"
	ReplyNowAway:        ":You have been marked as being away",                       // "<client> :You have been marked as being away"
	ReplyWhoisRegNick:   "${nick} :has identified for this nick",                     // "<client> <nick> :has identified for this nick"
	ReplyWhoisUser:      "${nick} ${stub} ${host} * :${message}",                     // "<client> <nick> <username> <host> * :<realname>"
	ReplyWhoisServer:    "${nick} ${server} :${message}",                             // "<client> <nick> <server> :<server info>"
	ReplyWhoisOperator:  "${nick} :is an IRC operator",                               // "<client> <nick> :is an IRC operator"
	ReplyWhoWasUser:     "${nick} ${stub} ${host} * :${message}",                     // "<client> <nick> <username> <host> * :<realname>"
	ReplyEndOfWho:       "${stub} :End of WHO list",                                  // "<client> <name> :End of WHO list"
	ReplyWhoisIdle:      "${nick} ${count} ${date} :seconds idle, signon time",       // "<client> <nick> <secs> <signon> :seconds idle, signon time"
	ReplyEndOfWhois:     "${nick} :End of /WHOIS list",                               // "<client> <nick> :End of /WHOIS list"
	ReplyWhoisChannels:  "${nick} :${message}",                                       // "<client> <nick> :[prefix]<channel>{ [prefix]<channel>}"
	ReplyWhoisSpecial:   "${nick} :${message}",                                       // "<client> <nick> :blah blah blah"
	ReplyListStart:      "Channel :Users  Name",                                      // "<client> Channel :Users  Name"
	ReplyList:           "${channel} ${count} :${message}",                           // "<client> <channel> <visible> :<topic>"
	ReplyListEnd:        ":End of /LIST",                                             // "<client> :End of /LIST"
	ReplyChannelModeIs:  "${channel} ${modes} ${stub}",                               // "<client> <channel> <modestring> <mode arguments>..."
	ReplyCreationTime:   "${channel} ${date}",                                        // "<client> <channel> <creationtime>"
	ReplyWhoisAccount:   "${nick} ${stub} :is logged in as",                          // "<client> <nick> <account> :is logged in as"
	ReplyNoTopic:        "${channel} :No topic is set",                               // "<client> <channel> :No topic is set"
	ReplyTopic:          "${channel} :${stub}",                                       // "<client> <channel> :<topic>"
	ReplyTopicWhoTime:   "${channel} ${nick} ${date}",                                // "<client> <channel> <who> <setat>"
	ReplyInviteList:     "${channel}",                                                // "<client> <channel>"
	ReplyEndOfInviteLst: ":End of /INVITE list",                                      // "<client> :End of /INVITE list"
	ReplyWhoisActually:  "${nick} :is actually using host ${host}",                   // "<client> <nick> <host|ip> :Is actually using host"
	ReplyInviting:       "${nick} ${channel}",                                        // "<client> <nick> <channel>"
	ReplyInvexList:      "${channel} ${stub}",                                        // "<client> <channel> <mask>"
	ReplyEndOfInvexList: "${channel} :End of Channel Invite Exception List",          // "<client> <channel> :End of Channel Invite Exception List"
	ReplyExceptList:     "${channel} ${stub}",                                        // "<client> <channel> <mask>"
	ReplyEndOfExceptLst: "${channel} :End of channel exception list",                 // "<client> <channel> :End of channel exception list"
	ReplyVersion:        "${stub} ${server} :${message}",                             // "<client> <version> <server> :<comments>"
	ReplyWhoReply:       "${channel} ${stub} ${host} ${server} ${nick} ${stub} :${stub} ${message}", // "<client> <channel> <user> <host> <server> <nick> <flags> :<hopcount> <realname>"
	ReplyNamReply:       "= ${channel} :${message}",                                  // "<client> <symbol> <channel> :[prefix]<nick>{ [prefix]<nick>}"
	ReplyLinks:          "* ${server} :${count} ${message}",                          // "<client> * <server> :<hopcount> <server info>"
	ReplyEndOfLinks:     "* :End of /LINKS list",                                     // "<client> * :End of /LINKS list"
	ReplyEndOfNames:     "${channel} :End of /NAMES list",                            // "<client> <channel> :End of /NAMES list"
	ReplyBanList:        "${channel} ${stub} ${nick} ${date}",                        // "<client> <channel> <mask> <who> <set-ts>"
	ReplyEndOfBanList:   "${channel} :End of channel ban list",                       // "<client> <channel> :End of channel ban list"
	ReplyEndOfWhoWas:    "${nick} :End of WHOWAS",                                    // "<client> <nick> :End of WHOWAS"
	ReplyInfo:           ":${message}",                                               // "<client> :<string>"
	ReplyMOTD:           ":${message}",                                               // "<client> :<line of motd>"
	ReplyEndOfInfo:      ":End of INFO list",                                         // "<client> :End of INFO list"
	ReplyMOTDStart:      ":- ${server} Message of the day - ",                        // "<client> :- <server> Message of the day - "
	ReplyEndOfMOTD:      ":End of /MOTD command",                                     // "<client> :End of /MOTD command"
	ReplyWhoisHost:      "${nick} :is connecting from *@${host} ${stub}",             // "<client> <nick> :is connecting from *@<host> <ip>"
	ReplyWhoisModes:     "${nick} :is using modes ${modes}",                          // "<client> <nick> :is using modes <modes>"
	ReplyYoureOper:      ":You are now an IRC operator",                              // "<client> :You are now an IRC operator"
	ReplyRehashing:      "${stub} :Rehashing",                                        // "<client> <config file> :Rehashing"
	ReplyTime:           "${server} ${count} ${stub} :${date}",                       // "<client> <server> <timestamp> <offset> :<human-readable time>"
	ErrUnknownError:     "${stub} :${message}",                                       // "<client> <command> :<info>"
	ErrNoSuchNick:       "${nick} :No such nick/channel",                             // "<client> <nickname> :No such nick/channel"
	ErrNoSuchServer:     "${server} :No such server",                                 // "<client> <server name> :No such server"
	ErrNoSuchChannel:    "${channel} :No such channel",                               // "<client> <channel> :No such channel"
	ErrCannotSendToChan: "${channel} :Cannot send to channel",                        // "<client> <channel> :Cannot send to channel"
	ErrTooManyChannels:  "${channel} :You have joined too many channels",             // "<client> <channel> :You have joined too many channels"
	ErrWasNoSuchNick:    "${nick} :There was no such nickname",                       // "<client> <nickname> :There was no such nickname"
	ErrNoOrigin:         ":No origin specified",                                      // "<client> :No origin specified"
	ErrNoRecipient:      ":No recipient given (${stub})",                             // "<client> :No recipient given (<command>)"
	ErrNoTextToSend:     ":No text to send",                                          // "<client> :No text to send"
	ErrInputTooLong:     ":Input line was too long",                                  // "<client> :Input line was too long"
	ErrUnknownCommand:   "${stub} :Unknown command",                                  // "<client> <command> :Unknown command"
	ErrNoMOTD:           ":MOTD File is missing",                                     // "<client> :MOTD File is missing"
	ErrNoNicknameGiven:  ":No nickname given",                                        // "<client> :No nickname given"
	ErrErroneusNickname: "${nick} :Erroneous nickname",                               // "<client> <nick> :Erroneous nickname"
	ErrNicknameInUse:    "${nick} :Nickname is already in use",                       // "<client> <nick> :Nickname is already in use"
	ErrNickCollision:    "${nick} :Nickname collision KILL",                          // "<client> <nick> :Nickname collision KILL"
	ErrUserNotInChannel: "${nick} ${channel} :They aren't on that channel",           // "<client> <nick> <channel> :They aren't on that channel"
	ErrNotOnChannel:     "${channel} :You're not on that channel",                    // "<client> <channel> :You're not on that channel"
	ErrUserOnChannel:    "${nick} ${channel} :is already on channel",                 // "<client> <user> <channel> :is already on channel"
	ErrNotRegistered:    ":You have not registered",                                  // "<client> :You have not registered"
	ErrNeedMoreParams:   "${stub} :Not enough parameters",                            // "<client> <command> :Not enough parameters"
	ErrAlreadyRegd:      ":You may not reregister",                                   // "<client> :You may not reregister"
	ErrPasswdMismatch:   ":Password incorrect",                                       // "<client> :Password incorrect"
	ErrYoureBannedCreep: ":You are banned from this server",                          // "<client> :You are banned from this server"
	ErrChannelIsFull:    "${channel} :Cannot join channel (+l)",                      // "<client> <channel> :Cannot join channel (+l)"
	ErrUnknownMode:      "${modes} :is unknown mode char to me",                      // "<client> <char> :is unknown mode char to me"
	ErrInviteOnlyChan:   "${channel} :Cannot join channel (+i)",                      // "<client> <channel> :Cannot join channel (+i)"
	ErrBannedFromChan:   "${channel} :Cannot join channel (+b)",                      // "<client> <channel> :Cannot join channel (+b)"
	ErrBadChannelKey:    "${channel} :Cannot join channel (+k)",                      // "<client> <channel> :Cannot join channel (+k)"
	ErrBadChanMask:      "${channel} :Bad Channel Mask",                              // "<client> <channel> :Bad Channel Mask"
	ErrNoPrivileges:     ":Permission Denied- You're not an IRC operator",            // "<client> :Permission Denied- You're not an IRC operator"
	ErrChanOPrivsNeeded: "${channel} :You're not channel operator",                   // "<client> <channel> :You're not channel operator"
	ErrCantKillServer:   ":You cant kill a server!",                                  // "<client> :You cant kill a server!"
	ErrNoOperHost:       ":No O-lines for your host",                                 // "<client> :No O-lines for your host"
	ErrUModeUnknownFlag: ":Unknown MODE flag",                                        // "<client> :Unknown MODE flag"
	ErrUsersDontMatch:   ":Cant change mode for other users",                         // "<client> :Cant change mode for other users"
	ErrHelpNotFound:     "${stub} :No help available on this topic",                  // "<client> <subject> :No help available on this topic"
	ErrInvalidKey:       ":Key is not valid for this server",                         // "<client> :Key is not valid for this server"
	ReplyStartTLS:       ":STARTTLS successful, proceed with TLS handshake",          // "<client> :STARTTLS successful, proceed with TLS handshake"
	ReplyWhoisSecure:    "${nick} :is using a secure connection",                     // "<client> <nick> :is using a secure connection"
	ErrStartTLS:         ":STARTTLS failed (${message})",                             // "<client> :STARTTLS failed (<reason>)"
	ErrInvalidModeParam: "${modes} ${channel} :Invalid mode parameter",               // "<client> <mode> <channel> :Invalid mode parameter"
	ReplyHelpStart:      "${stub} :${message}",                                       // "<client> <subject> :<first line of help section>"
	ReplyHelpTxt:        "${stub} :${message}",                                       // "<client> <subject> :<line of help text>"
	ReplyEndOfHelp:      "${stub} :${message}",                                       // "<client> <subject> :<last line of help text>"
	ErrNoPrivs:          "${stub} :Insufficient oper privileges.",                    // "<client> <priv> :Insufficient oper privileges."
	ReplyLoggedIn:       "${nick} ${stub} :You are now logged in as ${stub}",         // "<client> <nick> <user> <account> :You are now logged in as <account>"
	ReplyLoggedOut:      "${nick} :You are now logged out",                           // "<client> <nick> :You are now logged out"
	ErrNickLocked:       ":You must use a nick assigned to you",                      // "<client> :You must use a nick assigned to you"
	ReplySASLSuccess:    ":SASL authentication successful",                           // "<client> :SASL authentication successful"
	ErrSASLFail:         ":SASL authentication failed",                               // "<client> :SASL authentication failed"
	ErrSASLTooLong:      ":SASL message too long",                                    // "<client> :SASL message too long"
	ErrSASLAborted:      ":SASL authentication aborted",                              // "<client> :SASL authentication aborted"
	ErrSASLAlready:      ":You have already authenticated using SASL",                // "<client> :You have already authenticated using SASL"
	ReplySASLMechs:      "${stub} :are available SASL mechanisms",                    // "<client> <mechanisms> :are available SASL mechanisms"
}

// formatReply produces the wire line for a numeric reply: the fixed
// ":server <code> <client>" prefix, the expanded template, and CRLF. A code
// with no template (such as 300, RPL_NONE) gets the prefix alone.
func formatReply(code ReplyCode, params ReplyParams) string {
	tmpl, ok := replyTemplates[code]
	if !ok {
		return fmt.Sprintf(":server %03d %s\r\n", int(code), params.Client)
	}

	return fmt.Sprintf(":server %03d %s %s\r\n", int(code), params.Client,
		os.Expand(tmpl, params.slot))
}
