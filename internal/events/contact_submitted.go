package events

var ContactSubmittedTopic = "ContactSubmittedEvent"

type ContactSubmitted struct {
	Name  string
	Email string
}
