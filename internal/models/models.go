package models

// Account is a registered user. Passwords are stored and compared verbatim;
// there is no hashing in this system.
type Account struct {
	ID       int    `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Message is a short text post attributed to an account. PostedAtEpoch is a
// client-supplied unix timestamp.
type Message struct {
	ID            int    `json:"message_id"`
	PostedBy      int    `json:"posted_by"`
	Text          string `json:"message_text"`
	PostedAtEpoch int64  `json:"time_posted_epoch"`
}
