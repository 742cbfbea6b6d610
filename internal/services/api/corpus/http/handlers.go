// Package http provides http transport for the corpus admin surface
package http

import (
	stdhttp "net/http"

	"faqrelay/internal/modkit/httpkit"
	corpusdom "faqrelay/internal/services/corpus/domain"
)

// Register mounts the corpus admin endpoints on the given router
func Register(r httpkit.Router, corpus corpusdom.Provider) {
	h := &handlers{corpus: corpus}
	httpkit.Get(r, "/classifier", h.classifier)
	httpkit.Post(r, "/reload", h.reload)
}

type handlers struct{ corpus corpusdom.Provider }

// swagger:route GET /corpus/classifier Corpus corpusClassifier
// @Summary Live classifier facts (corpus size, threshold, vocab)
// @Tags Corpus
// @Produce json
// @Success 200 {object} classify.Stats "ok"
// @Router /corpus/classifier [get]
func (h *handlers) classifier(r *stdhttp.Request) (any, error) {
	return h.corpus.Snapshot().Stats(), nil
}

// swagger:route POST /corpus/reload Corpus corpusReload
// @Summary Rebuild the classifier from storage and swap it in
// @Tags Corpus
// @Produce json
// @Success 200 {object} classify.Stats "ok"
// @Router /corpus/reload [post]
func (h *handlers) reload(r *stdhttp.Request) (any, error) {
	return h.corpus.Reload(r.Context())
}
