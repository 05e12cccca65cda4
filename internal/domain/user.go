package domain

// UserConfig holds a user's relay configuration.
//
// AwaitingBaseURL marks the user as mid-configuration: the next plain
// text message is stored as the base URL instead of being treated as a
// link submission. The flag is cleared atomically with the base URL
// assignment, so a user is never configured and awaiting at once.
type UserConfig struct {
	BaseURL         string
	AwaitingBaseURL bool
}
