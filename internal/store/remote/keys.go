package remote

const (
	// KeyPrefixUser is the prefix for per-user document keys.
	KeyPrefixUser = "stash:user:"
)

// ConfigKey returns the key of a user's config document.
func ConfigKey(userID string) string {
	return KeyPrefixUser + userID + ":config"
}

// ConfigTSKey returns the key holding the server-assigned write timestamp
// of a user's config document.
func ConfigTSKey(userID string) string {
	return KeyPrefixUser + userID + ":config:ts"
}

// EventsChannel returns the pub/sub channel carrying config change events
// for a user.
func EventsChannel(userID string) string {
	return KeyPrefixUser + userID + ":config:events"
}

// ProfileKey returns the key of a user's profile document.
func ProfileKey(userID string) string {
	return KeyPrefixUser + userID + ":profile"
}
