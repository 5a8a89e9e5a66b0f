package events

import "github.com/quantumstack/site/internal/entities"

var ApplicationReceivedTopic = "ApplicationReceivedEvent"

type ApplicationReceived struct {
	Application entities.JobApplication
}
