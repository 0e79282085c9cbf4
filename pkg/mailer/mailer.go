package mailer

// RenderedMessage is the fully prepared representation handed to a transport:
// recipients parsed, header/footer folded into the body, importance mapped to
// an X-Priority value.
type RenderedMessage struct {
	From     string
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	Body     string
	HTML     bool
	Priority int
}

// Transport delivers a rendered message. The boolean reports whether the
// transport accepted the message; a non-nil error means the attempt failed in
// an unexpected way (connectivity, protocol) rather than being rejected.
type Transport interface {
	Send(msg *RenderedMessage) (bool, error)
}
