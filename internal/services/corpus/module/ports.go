package module

import dom "faqrelay/internal/services/corpus/domain"

// Ports holds the ports exposed by the corpus module
type Ports struct {
	Corpus dom.Provider
}
