package module

import dom "faqrelay/internal/services/intake/domain"

// Ports holds the ports exposed by the intake module
type Ports struct {
	Intake dom.Handler
}
