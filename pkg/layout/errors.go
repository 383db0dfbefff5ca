package layout

import (
	"errors"

	"github.com/itsatony/go-cuserr"
)

const (
	ErrCodeLayout = "FORMFIELD_LAYOUT"

	ErrMsgUnknownMode    = "unknown layout mode"
	ErrMsgUnknownProfile = "layout profile not registered"
	ErrMsgInvalidProfile = "invalid layout profile"
	ErrMsgDuplicate      = "layout profile already registered"

	MetaKeyMode    = "mode"
	MetaKeyProfile = "profile"
	MetaKeySource  = "source"
)

var (
	// ErrUnknownMode reports a layout mode outside default/horizontal/inline.
	ErrUnknownMode = errors.New("layout: unknown mode")
	// ErrUnknownProfile reports a lookup for a profile that was never registered.
	ErrUnknownProfile = errors.New("layout: unknown profile")
	// ErrInvalidProfile reports a malformed profile definition.
	ErrInvalidProfile = errors.New("layout: invalid profile")
	// ErrDuplicateProfile reports a second registration under the same name.
	ErrDuplicateProfile = errors.New("layout: duplicate profile")
)

func newModeError(mode string) error {
	return cuserr.WrapStdError(ErrUnknownMode, ErrCodeLayout, ErrMsgUnknownMode).
		WithMetadata(MetaKeyMode, mode)
}

func newProfileNotFoundError(name string) error {
	return cuserr.WrapStdError(ErrUnknownProfile, ErrCodeLayout, ErrMsgUnknownProfile).
		WithMetadata(MetaKeyProfile, name)
}

func newDuplicateProfileError(name string) error {
	return cuserr.WrapStdError(ErrDuplicateProfile, ErrCodeLayout, ErrMsgDuplicate).
		WithMetadata(MetaKeyProfile, name)
}

func newInvalidProfileError(name, source, reason string) error {
	return cuserr.WrapStdError(ErrInvalidProfile, ErrCodeLayout, ErrMsgInvalidProfile).
		WithMetadata(MetaKeyProfile, name).
		WithMetadata(MetaKeySource, source).
		WithMetadata("reason", reason)
}
