package smtp

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSmtp(t *testing.T) {
	t.Run(`build message check`, func(t *testing.T) {
		date := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
		msg := BuildMessage("hr@example.com", "anna@example.com", "Offer", "<p>Hello</p>", date)
		require.True(t, strings.HasPrefix(msg, "From: hr@example.com\r\nTo: anna@example.com\r\nSubject: Offer\r\n"))
		require.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"")
		require.Contains(t, msg, "Message-ID: <")
		require.True(t, strings.HasSuffix(msg, "\r\n\r\n<p>Hello</p>\r\n"))
	})

	t.Run(`encoded subject check`, func(t *testing.T) {
		msg := BuildMessage("hr@example.com", "anna@example.com", "Оффер", "body", time.Now())
		require.Contains(t, msg, "Subject: =?utf-8?q?")
	})

	t.Run(`not configured check`, func(t *testing.T) {
		err := Connect("", "", "", "", true)
		require.Nil(t, err)
		require.False(t, Instance.IsConfigured())
		require.ErrorIs(t, Instance.SendEMail("hr@example.com", "anna@example.com", "s", "b"), ErrNotConfigured)
	})
}
