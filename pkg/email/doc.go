// Package email delivers account verification codes.
//
// NewSender returns a Postmark-backed Sender when POSTMARK_SERVER_TOKEN is
// set and a DevSender, which writes messages to disk, otherwise.
// SendVerification renders the verification body with templ and sends it.
package email
