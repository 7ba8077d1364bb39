package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// IMAPReader serves the same row stream as the spreadsheet, built from
// the messages of an inbox. Each message becomes one row with the
// standard sheet columns, so the change detector treats both sources
// identically.
type IMAPReader struct {
	Address  string // host:port, TLS
	Username string
	Password string
	Mailbox  string
}

func NewIMAPReader(address, username, password string) *IMAPReader {
	return &IMAPReader{
		Address:  address,
		Username: username,
		Password: password,
		Mailbox:  "INBOX",
	}
}

func (r *IMAPReader) Read() ([]Row, error) {
	c, err := client.DialTLS(r.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("imap dial failed: %w", err)
	}
	defer c.Logout()

	if err := c.Login(r.Username, r.Password); err != nil {
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	mbox, err := c.Select(r.Mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("imap select failed: %w", err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	seqset := new(imap.SeqSet)
	seqset.AddRange(1, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, 16)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, messages)
	}()

	var content []Row
	for msg := range messages {
		row := Row{ColEmail: "", ColBody: "", ColAttachment: ""}
		if msg.Envelope != nil && len(msg.Envelope.From) > 0 {
			row[ColEmail] = msg.Envelope.From[0].Address()
		}
		if body := msg.GetBody(section); body != nil {
			row[ColBody] = readPlainText(body)
		}
		if row.Empty() {
			continue
		}
		content = append(content, row)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch failed: %w", err)
	}
	return content, nil
}

// readPlainText returns the first text part of a MIME message.
func readPlainText(r io.Reader) string {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return ""
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			return ""
		}
		if _, ok := part.Header.(*mail.InlineHeader); ok {
			data, err := io.ReadAll(part.Body)
			if err != nil {
				return ""
			}
			return strings.TrimSpace(string(data))
		}
	}
}
