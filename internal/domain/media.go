package domain

import "fmt"

// ResolvedMedia is the resolver API's answer for a single link: a
// direct media URL plus display metadata. It lives for one request.
type ResolvedMedia struct {
	DirectURL   string
	DisplayName string
	SizeLabel   string
}

// Caption returns the text attached to the relayed video.
func (m ResolvedMedia) Caption() string {
	if m.SizeLabel == "" {
		return m.DisplayName
	}
	return fmt.Sprintf("%s (%s)", m.DisplayName, m.SizeLabel)
}

// SentMessage references a message the bot has sent to a chat.
type SentMessage struct {
	ChatID    int64
	MessageID int
}
