// Package protocol defines the CBOR messages spoken on the live endpoint.
package protocol

type Op int

const (
	EncodeOp Op = iota
	DecodeOp
	RenderOp
	MirrorOp
	ResultOp
	HelloOp
)

func (o Op) String() string {
	switch o {
	case EncodeOp:
		return "encode"
	case DecodeOp:
		return "decode"
	case RenderOp:
		return "render"
	case MirrorOp:
		return "mirror"
	case ResultOp:
		return "result"
	case HelloOp:
		return "hello"
	}
	return "unknown"
}

// Request asks for one transcription. Id is echoed back in the result so
// clients can match out-of-order replies.
type Request struct {
	Op   Op
	Id   int
	Text string
}

type Result struct {
	Op      Op
	Id      int
	Success bool
	// Text output, or the reason for failure.
	Output string
	// Rendered SVG for render and mirror requests.
	Data []byte
}

// Hello is sent once when a client connects.
type Hello struct {
	Op      Op
	Service string
	Version string
}
