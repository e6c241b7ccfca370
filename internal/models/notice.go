package models

type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-visible message raised while processing a recording.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}
