package mail

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureDialer struct {
	msgs []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	d.msgs = append(d.msgs, m...)
	return d.err
}

func TestSMTPMailer_Send(t *testing.T) {
	t.Parallel()

	d := &captureDialer{}
	m := newSMTPMailerWithDialer("no-reply@reservaya.app", d)
	require.NoError(t, m.Send("ana@example.com", "Restablecer contraseña", "hola"))
	require.Len(t, d.msgs, 1)
	assert.Equal(t, []string{"ana@example.com"}, d.msgs[0].GetHeader("To"))
	assert.Equal(t, []string{"no-reply@reservaya.app"}, d.msgs[0].GetHeader("From"))

	d.err = errors.New("connection refused")
	err := m.Send("ana@example.com", "s", "b")
	assert.ErrorIs(t, err, d.err)
}

func TestLogMailer_Send(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := LogMailer{Logger: log.New(&buf, "", 0)}
	require.NoError(t, m.Send("ana@example.com", "Hola", "cuerpo"))
	assert.True(t, strings.Contains(buf.String(), "to=ana@example.com"))
}
