package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ann <ann@example.com>", Recipient("Ann", "ann@example.com"))
	assert.Equal(t, "ann@example.com", Recipient("", "ann@example.com"))
}

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := SimpleTags("billing", "urgent")
	assert.Len(t, tags, 2)
	assert.Contains(t, tags, "billing")
	assert.Contains(t, tags, "urgent")
}

func TestEmail_Clone(t *testing.T) {
	t.Parallel()

	var nilEmail *Email
	assert.NotNil(t, nilEmail.clone())

	orig := &Email{
		Subject: "s",
		To:      []string{"ann@example.com"},
		Headers: map[string]string{"X-Test": "1"},
		Tags:    SimpleTags("billing"),
	}

	cp := orig.clone()
	cp.To[0] = "bob@example.com"
	cp.Headers["X-Test"] = "2"

	assert.Equal(t, "ann@example.com", orig.To[0])
	assert.Equal(t, "1", orig.Headers["X-Test"])
}
