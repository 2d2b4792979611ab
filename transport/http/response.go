package http

// ResultCode is the application level status carried in every response body
type ResultCode string

const (
	CodeSuccess      ResultCode = "SUCCESS"
	CodeNoPermission ResultCode = "NO_PERMISSION"
	CodeInvalidInput ResultCode = "INVALID_INPUT"
	CodeNotFound     ResultCode = "NOT_FOUND"
	CodeConflict     ResultCode = "CONFLICT"
	CodeServerError  ResultCode = "SERVER_ERROR"
)

// MessageNotAccepted is the body message of every gate rejection
const MessageNotAccepted = "请求未被接受！"

// RestResponse is the response envelope
type RestResponse struct {
	Code    ResultCode  `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func success(data interface{}) RestResponse {
	return RestResponse{Code: CodeSuccess, Message: "ok", Data: data}
}

func failure(code ResultCode, message string) RestResponse {
	return RestResponse{Code: code, Message: message}
}

// noPermission is the single body every gate rejection produces
func noPermission() RestResponse {
	return failure(CodeNoPermission, MessageNotAccepted)
}
