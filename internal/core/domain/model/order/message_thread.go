package order

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// maxMessageLength bounds the text of a single thread message.
const maxMessageLength = 1000

// Attachment is a file reference carried by a message.
type Attachment struct {
	Filename string
	URL      string
	FileSize int64
}

// Message is one entry of an order's communication thread. System messages
// record status changes and have no sender.
type Message struct {
	senderID        *kernel.UUID
	text            string
	attachments     []Attachment
	timestamp       time.Time
	isSystemMessage bool
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	senderID *kernel.UUID,
	text string,
	attachments []Attachment,
	timestamp time.Time,
	isSystemMessage bool,
) Message {
	msg := Message{
		senderID:        senderID,
		text:            text,
		attachments:     make([]Attachment, len(attachments)),
		timestamp:       timestamp,
		isSystemMessage: isSystemMessage,
	}
	copy(msg.attachments, attachments)
	return msg
}

// SenderID returns the sending user, or nil for system messages.
func (m Message) SenderID() *kernel.UUID {
	return m.senderID
}

// Text returns the message text.
func (m Message) Text() string {
	return m.text
}

// Attachments returns a copy of the message attachments.
func (m Message) Attachments() []Attachment {
	attachments := make([]Attachment, len(m.attachments))
	copy(attachments, m.attachments)
	return attachments
}

// Timestamp returns when the message was appended.
func (m Message) Timestamp() time.Time {
	return m.timestamp
}

// IsSystemMessage reports whether the message was generated by a status
// change rather than written by a user.
func (m Message) IsSystemMessage() bool {
	return m.isSystemMessage
}

// MessageThread is the append-only, ordered communication log of an order.
// No mutation or deletion is exposed; retrieval paginates newest first.
// Capacity is unbounded here, storage growth is the persistence layer's
// concern.
type MessageThread struct {
	messages []Message
}

// NewMessageThread creates an empty thread.
func NewMessageThread() MessageThread {
	return MessageThread{}
}

// RestoreMessageThread reconstructs a thread from persistence.
func RestoreMessageThread(messages []Message) MessageThread {
	thread := MessageThread{messages: make([]Message, len(messages))}
	copy(thread.messages, messages)
	return thread
}

// Append adds a user message to the thread. Fails when the sender is
// invalid, the text is empty, or the text exceeds the length limit.
func (t *MessageThread) Append(senderID kernel.UUID, text string, attachments []Attachment, now time.Time) error {
	if err := senderID.Validate(); err != nil {
		return err
	}
	if text == "" {
		return errs.NewValueIsRequiredError("message text")
	}
	if len(text) > maxMessageLength {
		return errs.NewValueIsOutOfRangeError("message text length", len(text), 1, maxMessageLength)
	}

	sender := senderID
	msg := Message{
		senderID:    &sender,
		text:        text,
		attachments: make([]Attachment, len(attachments)),
		timestamp:   now,
	}
	copy(msg.attachments, attachments)
	t.messages = append(t.messages, msg)
	return nil
}

// appendSystem adds a system message recording a status change.
func (t *MessageThread) appendSystem(text string, now time.Time) {
	t.messages = append(t.messages, Message{
		text:            text,
		timestamp:       now,
		isSystemMessage: true,
	})
}

// Len returns the number of messages in the thread.
func (t MessageThread) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the thread in append order.
func (t MessageThread) Messages() []Message {
	messages := make([]Message, len(t.messages))
	copy(messages, t.messages)
	return messages
}

// Page returns one page of the thread in reverse-chronological order.
// Pages are 1-based; an out-of-range page yields an empty slice.
func (t MessageThread) Page(page, limit int) []Message {
	if page < 1 || limit < 1 {
		return nil
	}

	start := (page - 1) * limit
	if start >= len(t.messages) {
		return []Message{}
	}

	result := make([]Message, 0, limit)
	for i := len(t.messages) - 1 - start; i >= 0 && len(result) < limit; i-- {
		result = append(result, t.messages[i])
	}
	return result
}
