// Package telegram adapts the telebot client to the narrow messaging
// surface the pipeline works against.
package telegram

import (
	"path/filepath"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// Messenger wraps a telebot instance.
type Messenger struct {
	bot *tele.Bot
}

// NewMessenger creates a new messenger backed by bot.
func NewMessenger(bot *tele.Bot) *Messenger {
	return &Messenger{bot: bot}
}

// SendText sends a plain text message and returns its message ID.
func (m *Messenger) SendText(chatID int64, text string) (int, error) {
	msg, err := m.bot.Send(tele.ChatID(chatID), text)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// EditText replaces the text of a previously sent message.
func (m *Messenger) EditText(chatID int64, messageID int, text string) error {
	_, err := m.bot.Edit(stored(chatID, messageID), text)
	return err
}

// DeleteMessage deletes a previously sent message.
func (m *Messenger) DeleteMessage(chatID int64, messageID int) error {
	return m.bot.Delete(stored(chatID, messageID))
}

// SendVideoURL asks the platform to fetch and send a remote video URL
// itself. Telegram only accepts this for moderate file sizes, so the
// caller must be prepared to fall back to a local upload.
func (m *Messenger) SendVideoURL(chatID int64, url, caption string) (int, error) {
	video := &tele.Video{
		File:    tele.FromURL(url),
		Caption: caption,
	}
	msg, err := m.bot.Send(tele.ChatID(chatID), video)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// SendVideoFile uploads a local video file with a caption.
func (m *Messenger) SendVideoFile(chatID int64, path, caption string) (int, error) {
	video := &tele.Video{
		File:     tele.FromDisk(path),
		Caption:  caption,
		FileName: filepath.Base(path),
	}
	msg, err := m.bot.Send(tele.ChatID(chatID), video)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

func stored(chatID int64, messageID int) tele.Editable {
	return &tele.StoredMessage{
		ChatID:    chatID,
		MessageID: strconv.Itoa(messageID),
	}
}
