package module

import dom "faqrelay/internal/services/decisionlog/domain"

// Ports holds the ports exposed by the decision log module
type Ports struct {
	Recorder dom.Recorder
}
