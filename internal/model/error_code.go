package model

// ErrorCode классифицирует причину неудачной аутентификации для клиента.
type ErrorCode string

const (
	ItemNotExist  ErrorCode = "ITEM_NOT_EXIST"
	WrongPassword ErrorCode = "WRONG_PASSWORD"
	UnknownError  ErrorCode = "UNKNOWN_ERROR"
)

func (code ErrorCode) String() string {
	return string(code)
}
