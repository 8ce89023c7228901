package events

import "errors"

// Kind classifies a lifecycle failure. Every kind maps to a 400 response;
// the split exists so callers and tests can tell the failures apart.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidState
)

// Error is a tagged, user-facing failure returned by the event service. The
// messages are the ones the frontend already knows, hence the Portuguese.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func InvalidState(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// AsError unwraps err into a tagged *Error if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

const (
	MsgEventNotFound       = "Evento não existe"
	MsgEventNotFoundCancel = "Esse evento não existe!"
	MsgEventFinished       = "Evento já finalizado"
	MsgNotOwner            = "Você não é o dono desse evento"
	MsgNotOwnerCancel      = "Você não é o dono desse evento!"
	MsgAlreadyCanceled     = "Esse evento já foi cancelado!"
	MsgCancelFinished      = "Você não pode apagar um evento que já foi finalizado!"
	MsgBannerNotFound      = "Banner não encontrado"
	MsgImageNotFound       = "Imagem não encontrada"
	MsgBannerWrongType     = "Sua foto deve ser um banner"
	MsgCreatePastDate      = "Você não pode criar um evento para uma data que já passou!"
	MsgOldDatesNotAllowed  = "Datas antigas não são permitidas"
	MsgInvalidDate         = "Data inválida"
)
