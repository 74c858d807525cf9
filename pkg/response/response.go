package response

import "fmt"

// Wire envelopes of the public contract. The success payload lives with the
// handler because it embeds verification output; everything that can go
// wrong is shaped here.

// ClientError is the body for request-level failures (bad method, missing
// field). The message is static; nothing caller-supplied is echoed back.
type ClientError struct {
	Error string `json:"error"`
}

// VendorRejected is the body for receipts Apple rejected after the sandbox
// fallback already ran. The numeric status lets clients tell reasons apart.
type VendorRejected struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// ServerError is the body for transport and parse failures on the vendor
// call. The underlying message is exposed; no secrets flow through here.
type ServerError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewClientError(msg string) *ClientError {
	return &ClientError{Error: msg}
}

func NewVendorRejected(status int) *VendorRejected {
	return &VendorRejected{
		Success: false,
		Error:   fmt.Sprintf("Apple validation failed with status %d", status),
		Status:  status,
	}
}

func NewServerError(message string) *ServerError {
	return &ServerError{
		Success: false,
		Error:   "Internal server error",
		Message: message,
	}
}
