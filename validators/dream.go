package validators

import "errors"

const maxDreamLength = 10000

var (
	ErrDreamEmpty   = errors.New("dream text is empty")
	ErrDreamTooLong = errors.New("dream text is too long")
)

// DreamTextValidator rejects transcripts the capture flow would
// refuse anyway, before any remote call is made
func DreamTextValidator(t string) error {
	if t == "" {
		return ErrDreamEmpty
	}

	if len(t) > maxDreamLength {
		return ErrDreamTooLong
	}

	return nil
}
