package handler

import (
	"encoding/json"
	"net/http"
)

const contentTypeJSON = "application/json; charset=UTF-8"

// MessageResponse: тело ответа на вход и на отказ в доступе.
// swagger:model
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ExceptionResponse: тело ответа 401 при ошибке токена.
// swagger:model
type ExceptionResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func writeJSON(writer http.ResponseWriter, status int, value any) {
	writer.Header().Set("Content-Type", contentTypeJSON)
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(value)
}
