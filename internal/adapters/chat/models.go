package chat

// User is a partial chat user document with fields we use
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	IsBot    bool   `json:"is_bot"`
	DeleteAt int64  `json:"delete_at"`
}

// Channel is a partial chat channel document
type Channel struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // O open, P private, D direct
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	TeamID      string `json:"team_id"`
}

// Post is a message as stored by the gateway
type Post struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	RootID    string `json:"root_id"`
	CreateAt  int64  `json:"create_at"`
}
