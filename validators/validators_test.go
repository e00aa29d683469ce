package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("a@b.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not an email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longenough"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("x", 256)), ErrPasswordTooLong)
}

func TestDreamTextValidator(t *testing.T) {
	assert.NoError(t, DreamTextValidator("I flew over mountains"))
	assert.ErrorIs(t, DreamTextValidator(""), ErrDreamEmpty)
	assert.ErrorIs(t, DreamTextValidator(strings.Repeat("z", 10001)), ErrDreamTooLong)
}
