package models

// Account is a registered user identity. The password is stored and compared
// as plain text; credential handling beyond equality is out of scope here.
type Account struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Message is a single post owned by one account. PostedAt is a caller-supplied
// epoch timestamp and is never interpreted by the server.
type Message struct {
	ID       int64  `json:"message_id"`
	PostedBy int64  `json:"posted_by"`
	Text     string `json:"message_text"`
	PostedAt int64  `json:"time_posted_epoch"`
}
