package sbe

// Message is one decoded SBE message body. It holds one of SequenceReset,
// SecurityStatus, SecurityDefinitionUpdateReport, TradingSessionStatus,
// OrderUpdate, OrderExecution, OrderBookSnapshot, or SecurityDefinition.
// Callers type-switch on it; there are no back-references between messages
// so a plain sum type is enough (spec.md §4.4.8).
type Message struct {
	Header MessageHeader
	Body   any
}

// SimbaPacket is the decoded record produced from one SIMBA payload.
type SimbaPacket struct {
	MarketDataHeader MarketDataPacketHeader
	IncrementalHeader *IncrementalPacketHeader
	LastMessageHeader MessageHeader
	Messages          []Message

	// UnknownTemplates counts messages whose template id had no dispatch
	// entry and were skipped by block length alone (spec.md §4.4.1 step d).
	UnknownTemplates int

	// Err is set when a short read was detected inside the packet. The
	// packet is still returned with whatever messages were decoded before
	// the failure (spec.md §4.4.9).
	Err error
}

// Decode parses one SIMBA market-data packet from payload. It is a pure
// function: it never mutates payload and holds no state across calls.
func Decode(payload []byte) SimbaPacket {
	r := newReader(payload)

	var packet SimbaPacket

	packet.MarketDataHeader = parseMarketDataPacketHeader(r)

	if packet.MarketDataHeader.Incremental() {
		hdr := parseIncrementalPacketHeader(r)
		packet.IncrementalHeader = &hdr
	}

	for r.offset < len(payload) && r.err == nil {
		msgStart := r.offset

		header := parseMessageHeader(r)
		if r.err != nil {
			break
		}

		packet.LastMessageHeader = header

		body, ok := decodeBody(r, header.TemplateID)
		if !ok {
			// Unknown template: advance by the declared block length and
			// move on, per spec.md §4.4.1 step d. Not an error.
			packet.UnknownTemplates++
			r.offset = msgStart + HeaderSize + int(header.BlockLength)
			continue
		}

		if r.err != nil {
			break
		}

		packet.Messages = append(packet.Messages, Message{Header: header, Body: body})
	}

	packet.Err = r.err

	return packet
}

// decodeBody dispatches templateID to its message decoder. ok is false for
// an unknown template id, in which case body is nil and the caller must
// skip by blockLength itself.
func decodeBody(r *reader, templateID uint16) (body any, ok bool) {
	switch templateID {
	case TemplateSequenceReset:
		return parseSequenceReset(r), true
	case TemplateSecurityStatus:
		return parseSecurityStatus(r), true
	case TemplateSecurityDefinitionUpdateReport:
		return parseSecurityDefinitionUpdateReport(r), true
	case TemplateTradingSessionStatus:
		return parseTradingSessionStatus(r), true
	case TemplateOrderUpdate:
		return parseOrderUpdate(r), true
	case TemplateOrderExecution:
		return parseOrderExecution(r), true
	case TemplateOrderBookSnapshot:
		return parseOrderBookSnapshot(r), true
	case TemplateSecurityDefinition:
		return parseSecurityDefinition(r), true
	default:
		return nil, false
	}
}
