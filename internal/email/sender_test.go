package email

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("yo@example.com", "tu@example.com", "Reporte semanal", "<h1>hola</h1>")

	assert.Contains(t, msg, "From: yo@example.com\r\n")
	assert.Contains(t, msg, "To: tu@example.com\r\n")
	assert.Contains(t, msg, "Subject: Reporte semanal\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n<h1>hola</h1>"))
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg := buildMessage("", "tu@example.com", "📊 Reporte financiero", "cuerpo")

	// Emoji subjects must be Q-encoded per RFC 2047.
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.NotContains(t, msg, "Subject: 📊")
}

func TestBuildMessage_OmitsEmptyFrom(t *testing.T) {
	msg := buildMessage("", "tu@example.com", "hola", "cuerpo")

	assert.NotContains(t, msg, "From:")
}
