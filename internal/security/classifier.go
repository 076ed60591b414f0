package security

import (
	"net/http"
	"strings"

	"PeerFund_Auth/internal/model"
)

// Mode: режим аутентификации запроса, определяемый только по заголовкам.
type Mode int

const (
	NoAuth Mode = iota
	AccessOnly
	AccessAndRefresh
)

func (mode Mode) String() string {
	switch mode {
	case AccessOnly:
		return "ACCESS_ONLY"
	case AccessAndRefresh:
		return "ACCESS_AND_REFRESH"
	default:
		return "NO_AUTH"
	}
}

func hasText(value string) bool {
	return strings.TrimSpace(value) != ""
}

func HasAccessHeader(request *http.Request) bool {
	return hasText(request.Header.Get(AccessTokenHeader))
}

func HasRefreshHeader(request *http.Request) bool {
	return hasText(request.Header.Get(RefreshTokenHeader))
}

func ValidAccessHeader(request *http.Request) bool {
	return HasAccessHeader(request) && strings.HasPrefix(request.Header.Get(AccessTokenHeader), TokenPrefix)
}

func ValidRefreshHeader(request *http.Request) bool {
	return HasRefreshHeader(request) && strings.HasPrefix(request.Header.Get(RefreshTokenHeader), TokenPrefix)
}

// Classify определяет режим. Refresh заголовок без префикса Bearer
// не мешает аутентификации по одному access токену.
func Classify(request *http.Request) Mode {
	if !ValidAccessHeader(request) {
		return NoAuth
	}
	if !ValidRefreshHeader(request) {
		return AccessOnly
	}
	return AccessAndRefresh
}

// Extract снимает префикс Bearer с заголовков. Других обрезок не делается.
func Extract(request *http.Request, mode Mode) model.TokenPair {
	switch mode {
	case AccessOnly:
		return model.TokenPair{Access: stripPrefix(request.Header.Get(AccessTokenHeader))}
	case AccessAndRefresh:
		refresh := stripPrefix(request.Header.Get(RefreshTokenHeader))
		return model.TokenPair{
			Access:  stripPrefix(request.Header.Get(AccessTokenHeader)),
			Refresh: &refresh,
		}
	default:
		return model.TokenPair{}
	}
}

func stripPrefix(value string) string {
	return strings.TrimPrefix(value, TokenPrefix)
}

// SetAccessTokenHeader пишет новый access токен в ответ.
func SetAccessTokenHeader(writer http.ResponseWriter, token string) {
	writer.Header().Set(AccessTokenHeader, TokenPrefix+token)
}

// SetRefreshTokenHeader пишет новый refresh токен в ответ.
func SetRefreshTokenHeader(writer http.ResponseWriter, token string) {
	writer.Header().Set(RefreshTokenHeader, TokenPrefix+token)
}
