package server

import (
	"encoding/json"
	"net/http"
)

const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeInvalidRemote   = "INVALID_REMOTE_CATEGORY"
	CodeCountOutOfRange = "SIMULATION_COUNT_OUT_OF_RANGE"
	CodeNoData          = "NO_DATA"
	CodeInternal        = "INTERNAL"
)

type okResponse struct {
	Status  string `json:"status"`
	Msg     string `json:"msg"`
	Records int    `json:"records"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, errorResponse{Code: code, Message: message})
}
