package sbe

import (
	"encoding/json"

	"github.com/cespare/xxhash/v2"
)

// fingerprintView mirrors SimbaPacket but omits Err: two decodes of a
// truncated payload carry the same wrapped offset in Err, but comparing
// fingerprints should only ever speak to the decoded messages themselves,
// not to how the decoder reports its own stopping point.
type fingerprintView struct {
	MarketDataHeader  MarketDataPacketHeader
	IncrementalHeader *IncrementalPacketHeader
	LastMessageHeader MessageHeader
	Messages          []Message
	UnknownTemplates  int
}

// Fingerprint hashes a canonical re-encoding of packet, giving callers a
// cheap way to verify testable property 9 (decoding the same bytes twice
// yields the same record) by comparing decoded packets rather than raw
// bytes, and to de-duplicate retransmitted packets at the sink. It reuses
// the package's own MarshalJSON methods, so two packets that decode to the
// same enums, bitmasks and decimals fingerprint identically even if nothing
// else about their construction matches.
func Fingerprint(packet *SimbaPacket) uint64 {
	view := fingerprintView{
		MarketDataHeader:  packet.MarketDataHeader,
		IncrementalHeader: packet.IncrementalHeader,
		LastMessageHeader: packet.LastMessageHeader,
		Messages:          packet.Messages,
		UnknownTemplates:  packet.UnknownTemplates,
	}

	raw, err := json.Marshal(view)
	if err != nil {
		// Messages holds only the Body types this package itself produces,
		// all of which marshal cleanly; a failure here means a new message
		// type was added without a MarshalJSON for one of its fields.
		panic("sbe: fingerprint: " + err.Error())
	}

	return xxhash.Sum64(raw)
}
