package utils

import (
	"fmt"
	"net/http"
)

// ErrorKind mengklasifikasikan kegagalan pemanggilan eksternal secara eksplisit,
// menggantikan pencocokan substring pada pesan error.
type ErrorKind int

const (
	KindConfigMissing ErrorKind = iota + 1
	KindHTTPStatus
	KindNetworkFailure
	KindTimeout
)

type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindConfigMissing:
		return fmt.Sprintf("config missing: %s", e.Message)
	case KindHTTPStatus:
		return fmt.Sprintf("http %d: %s", e.StatusCode, e.Message)
	case KindTimeout:
		return fmt.Sprintf("timeout: %s", e.Message)
	default:
		return fmt.Sprintf("network failure: %s", e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage mengembalikan pesan panduan untuk ditampilkan ke user.
func (e *APIError) UserMessage() string {
	switch e.Kind {
	case KindConfigMissing:
		return "Konfigurasi aplikasi belum lengkap. Hubungi staff untuk bantuan."
	case KindHTTPStatus:
		if e.Message != "" {
			return e.Message
		}
		return http.StatusText(e.StatusCode)
	case KindTimeout:
		return "Permintaan memakan waktu terlalu lama. Silakan coba lagi."
	default:
		return "Koneksi ke server gagal. Periksa jaringan Anda lalu coba lagi."
	}
}

func NewConfigMissingError(what string) *APIError {
	return &APIError{Kind: KindConfigMissing, Message: what}
}

func NewHTTPStatusError(code int, message string, err error) *APIError {
	return &APIError{Kind: KindHTTPStatus, StatusCode: code, Message: message, Err: err}
}

func NewNetworkError(err error) *APIError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Kind: KindNetworkFailure, Message: msg, Err: err}
}

func NewTimeoutError(what string) *APIError {
	return &APIError{Kind: KindTimeout, Message: what}
}
