package models

// Chat roles as the external completion service expects them.
const (
	ChatRoleUser  = "user"
	ChatRoleModel = "model"
)

// ChatTurn is a single entry of an assistant transcript.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
