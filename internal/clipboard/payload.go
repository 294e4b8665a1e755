package clipboard

// Interchange formats in paste priority order.
const (
	MIMENative = "application/x-editor-blocks"
	MIMEHTML   = "text/html"
	MIMEPlain  = "text/plain"
)

// Formats lists every format in paste priority order.
var Formats = []string{MIMENative, MIMEHTML, MIMEPlain}

// Payload carries clipboard content keyed by format. Missing formats are
// absent from the map.
type Payload map[string]string

// NewPayload builds a payload holding all three formats.
func NewPayload(native, html, plain string) Payload {
	return Payload{
		MIMENative: native,
		MIMEHTML:   html,
		MIMEPlain:  plain,
	}
}

// Get returns the entry for format.
func (p Payload) Get(format string) (string, bool) {
	v, ok := p[format]
	return v, ok
}

// Has reports whether format is present.
func (p Payload) Has(format string) bool {
	_, ok := p[format]
	return ok
}

// Available returns the present formats in paste priority order.
func (p Payload) Available() []string {
	var out []string
	for _, f := range Formats {
		if p.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy of p.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
