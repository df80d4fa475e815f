package mailbox

import (
	"github.com/emersion/go-sasl"
)

const xoauth2Mechanism = "XOAUTH2"

// xoauth2Client implements the XOAUTH2 mechanism used by Gmail and Outlook IMAP.
type xoauth2Client struct {
	username string
	token    string
}

func NewXOAuth2Client(username, token string) sasl.Client {
	return &xoauth2Client{username: username, token: token}
}

func (c *xoauth2Client) Start() (mech string, ir []byte, err error) {
	ir = []byte("user=" + c.username + "\x01auth=Bearer " + c.token + "\x01\x01")
	return xoauth2Mechanism, ir, nil
}

// Next answers the error challenge with an empty response so the server can finish with NO.
func (c *xoauth2Client) Next(challenge []byte) ([]byte, error) {
	return []byte{}, nil
}
