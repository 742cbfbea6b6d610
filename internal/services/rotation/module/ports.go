package module

import dom "faqrelay/internal/services/rotation/domain"

// Ports holds the ports exposed by the rotation module
type Ports struct {
	Selector dom.Selector
}
