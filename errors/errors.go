package errors

import "fmt"

// Category sentinels. The boundary layer maps these to stable outward codes,
// so every specific failure below wraps exactly one of them and errors.Is
// matches either level.
var (
	ErrNotFound   = fmt.Errorf("not found")
	ErrForbidden  = fmt.Errorf("forbidden")
	ErrBadRequest = fmt.Errorf("bad request")
)

var (
	ErrConversationNotFound = fmt.Errorf("%w: conversation", ErrNotFound)
	ErrMessageNotFound      = fmt.Errorf("%w: message", ErrNotFound)

	ErrNotParticipant = fmt.Errorf("%w: not an active participant", ErrForbidden)
	ErrAdminRequired  = fmt.Errorf("%w: admin rights required", ErrForbidden)
	ErrNotSender      = fmt.Errorf("%w: only the sender may do this", ErrForbidden)

	ErrGroupNameRequired = fmt.Errorf("%w: a group needs a non-empty name", ErrBadRequest)
	ErrNotAGroup         = fmt.Errorf("%w: conversation is not a group", ErrBadRequest)
	ErrUnknownUser       = fmt.Errorf("%w: unknown or inactive user", ErrBadRequest)
	ErrInvalidReply      = fmt.Errorf("%w: reply target not usable", ErrBadRequest)
	ErrDirectPairSize    = fmt.Errorf("%w: a direct conversation needs exactly two members", ErrBadRequest)

	ErrWorkerPanic = fmt.Errorf("worker panic")
)
