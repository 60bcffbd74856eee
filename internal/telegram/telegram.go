package telegram

// Client delivers operational notifications to the configured admin user.
// Delivery is best effort: a lost notification never affects request handling.
type Client interface {
	SendMessageToUser(msg string)
}
