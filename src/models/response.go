package models

// BaseResponse envelope มาตรฐานของทุก endpoint: {success, msg, data}
type BaseResponse struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}
