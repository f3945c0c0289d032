package trace

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys recorded on segmentation spans
const (
	AttrRequestID      = "request.id"
	AttrSessionID      = "session.id"
	AttrEndpoint       = "http.endpoint"
	AttrTextLength     = "text.length"
	AttrTextCount      = "text.count"
	AttrTokenCount     = "token.count"
	AttrSentenceCount  = "sentence.count"
	AttrNormalizeASCII = "tokenizer.normalize_ascii"
	AttrKeepWhitespace = "tokenizer.keep_whitespace"

	AttrErrorType    = "error.type"
	AttrErrorMessage = "error.message"
)

// RequestAttrs identifies the request a span belongs to
func RequestAttrs(requestID, endpoint string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrRequestID, requestID),
		attribute.String(AttrEndpoint, endpoint),
	}
}

// SessionAttrs identifies the WebSocket session a span belongs to
func SessionAttrs(sessionID string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrSessionID, sessionID),
	}
}

// TokenizerAttrs records the options a text was segmented with
func TokenizerAttrs(textLength int, normalizeASCII, keepWhitespace bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrTextLength, textLength),
		attribute.Bool(AttrNormalizeASCII, normalizeASCII),
		attribute.Bool(AttrKeepWhitespace, keepWhitespace),
	}
}

// ErrorAttrs creates attributes for errors
func ErrorAttrs(errType, errMsg string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrErrorType, errType),
		attribute.String(AttrErrorMessage, errMsg),
	}
}
