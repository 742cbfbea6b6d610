package module

import dom "faqrelay/internal/services/review/domain"

// Ports holds the ports exposed by the review module
type Ports struct {
	Actions dom.Actions
	Reviews dom.Reader
	Intake  dom.Creator
	Sweeper dom.Sweeper
	Worker  dom.WorkerPort
}
