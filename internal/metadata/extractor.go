// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package metadata

// Extractor returns typed documentation for handlers, one category at a
// time. Implementations must not retain handlers between calls.
type Extractor interface {
	// ControllerHidden reports whether every route of the controller is hidden.
	ControllerHidden(c *Controller) bool

	// Hidden reports whether the handler method itself is hidden.
	Hidden(h *Handler) bool

	Operation(h *Handler) *OperationDoc
	RequestBody(h *Handler) *RequestBodyDoc
	Responses(h *Handler) []ResponseDoc
	Callbacks(h *Handler) []CallbackDoc

	// Tags returns tag declarations from the owner followed by the handler's.
	Tags(h *Handler) []TagDoc

	// JSONView returns the view declared on the handler method.
	JSONView(h *Handler) string

	// Params returns the handler's visible signature parameters.
	Params(h *Handler) []Param

	// ResponseStatus returns the declared default status, or 0.
	ResponseStatus(h *Handler) int
}

// AnnotationExtractor reads documentation straight from descriptor fields.
type AnnotationExtractor struct{}

// NewAnnotationExtractor creates the default extractor.
func NewAnnotationExtractor() *AnnotationExtractor {
	return &AnnotationExtractor{}
}

// ControllerHidden reports the controller's hidden flag.
func (AnnotationExtractor) ControllerHidden(c *Controller) bool {
	return c != nil && c.Hidden
}

// Hidden is true when the handler or its operation documentation is hidden.
func (AnnotationExtractor) Hidden(h *Handler) bool {
	return h.Hidden || (h.Operation != nil && h.Operation.Hidden)
}

// Operation returns the handler's operation documentation.
func (AnnotationExtractor) Operation(h *Handler) *OperationDoc {
	return h.Operation
}

// RequestBody prefers the method-level declaration over one nested in the
// operation documentation.
func (AnnotationExtractor) RequestBody(h *Handler) *RequestBodyDoc {
	if h.RequestBody != nil {
		return h.RequestBody
	}
	if h.Operation != nil {
		return h.Operation.RequestBody
	}
	return nil
}

// Responses lists operation-level responses first so method-level
// declarations override them by status.
func (AnnotationExtractor) Responses(h *Handler) []ResponseDoc {
	var out []ResponseDoc
	if h.Operation != nil {
		out = append(out, h.Operation.Responses...)
	}
	return append(out, h.Responses...)
}

// Callbacks returns the declared callbacks in declaration order.
func (AnnotationExtractor) Callbacks(h *Handler) []CallbackDoc {
	return h.Callbacks
}

// Tags returns the owner's tags followed by the handler's.
func (AnnotationExtractor) Tags(h *Handler) []TagDoc {
	var out []TagDoc
	if h.Owner != nil {
		out = append(out, h.Owner.Tags...)
	}
	return append(out, h.Tags...)
}

// JSONView returns the handler's view.
func (AnnotationExtractor) JSONView(h *Handler) string {
	return h.JSONView
}

// Params drops hidden parameters.
func (AnnotationExtractor) Params(h *Handler) []Param {
	out := make([]Param, 0, len(h.Params))
	for _, p := range h.Params {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// ResponseStatus falls back to the owner's status.
func (AnnotationExtractor) ResponseStatus(h *Handler) int {
	if h.ResponseStatus != 0 {
		return h.ResponseStatus
	}
	if h.Owner != nil {
		return h.Owner.ResponseStatus
	}
	return 0
}
