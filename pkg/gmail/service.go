package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Sender sends transactional mail from a single service account
// authorized through an offline OAuth refresh token.
type Sender struct {
	config    *oauth2.Config
	token     *oauth2.Token
	fromEmail string
	fromName  string
}

func NewSender(clientID, clientSecret, refreshToken, fromEmail, fromName string) *Sender {
	return &Sender{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmail.GmailSendScope},
		},
		token:     &oauth2.Token{RefreshToken: refreshToken},
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// Send sends a plain-text email.
func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	ts := s.config.TokenSource(ctx, s.token)
	srv, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return fmt.Errorf("unable to create gmail service: %w", err)
	}

	var emailMsg bytes.Buffer
	if s.fromName != "" && s.fromEmail != "" {
		encodedName := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(s.fromName)))
		emailMsg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", encodedName, s.fromEmail))
	}
	emailMsg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	// Encode subject to handle non-ASCII characters (RFC 2047)
	encodedSubject := fmt.Sprintf("=?utf-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(subject)))
	emailMsg.WriteString(fmt.Sprintf("Subject: %s\r\n", encodedSubject))
	emailMsg.WriteString("MIME-Version: 1.0\r\n")
	emailMsg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	emailMsg.WriteString(body)
	emailMsg.WriteString("\r\n")

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(emailMsg.Bytes()),
	}

	if _, err := srv.Users.Messages.Send("me", msg).Do(); err != nil {
		return fmt.Errorf("unable to send message: %w", err)
	}
	return nil
}
