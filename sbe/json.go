package sbe

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Decimal5 as {"mantissa":N,"exponent":-5}, mirroring
// the original decoder's JSON shape (spec.md §6.3).
func (d Decimal5) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"mantissa":%d,"exponent":%d}`, d.Mantissa, d.Exponent())), nil
}

// MarshalJSON renders a Decimal5NULL, substituting null for the sentinel
// mantissa.
func (d Decimal5NULL) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return []byte(fmt.Sprintf(`{"mantissa":null,"exponent":%d}`, d.Exponent())), nil
	}

	return []byte(fmt.Sprintf(`{"mantissa":%d,"exponent":%d}`, d.Mantissa, d.Exponent())), nil
}

// MarshalJSON renders a Decimal2NULL, substituting null for the sentinel
// mantissa.
func (d Decimal2NULL) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return []byte(fmt.Sprintf(`{"mantissa":null,"exponent":%d}`, d.Exponent())), nil
	}

	return []byte(fmt.Sprintf(`{"mantissa":%d,"exponent":%d}`, d.Mantissa, d.Exponent())), nil
}

// MarshalJSON renders a DoubleNULL as a bare number, or null for the quiet
// NaN sentinel.
func (d DoubleNULL) MarshalJSON() ([]byte, error) {
	if d.IsNull() {
		return []byte("null"), nil
	}

	return json.Marshal(d.Value)
}

// MarshalJSON renders a scalar enum as its schema name, or "Unknown(N)" for
// an unassigned code (spec.md §3.4).
func (a MDUpdateAction) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }
func (t MDEntryType) MarshalJSON() ([]byte, error)     { return json.Marshal(t.String()) }
func (s SecurityAltIDSource) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (s SecurityTradingStatus) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }
func (t TradingSessionID) MarshalJSON() ([]byte, error) { return json.Marshal(t.String()) }
func (m MarketSegmentID) MarshalJSON() ([]byte, error)  { return json.Marshal(m.String()) }
func (s TradSesStatus) MarshalJSON() ([]byte, error)    { return json.Marshal(s.String()) }
func (e TradSesEvent) MarshalJSON() ([]byte, error)     { return json.Marshal(e.String()) }
func (n NegativePrices) MarshalJSON() ([]byte, error)   { return json.Marshal(n.String()) }

// MarshalJSON renders a bitmask as the array of tags whose bit is set
// (spec.md §4.4.7).
func (m MsgFlagsSet) MarshalJSON() ([]byte, error)  { return json.Marshal(m.Tags()) }
func (m MDFlagsSet) MarshalJSON() ([]byte, error)   { return json.Marshal(m.Tags()) }
func (m MDFlags2Set) MarshalJSON() ([]byte, error)  { return json.Marshal(m.Tags()) }
func (f FlagsSet) MarshalJSON() ([]byte, error)     { return json.Marshal(f.Tags()) }
