package sbe

import "fmt"

// Scalar enums preserve whatever code appeared on the wire, even if it has
// no assigned name; String always succeeds and reports "Unknown(code)" for
// anything not in the schema's domain (spec.md §3.4).

// MDUpdateAction identifies the kind of book change a message carries.
type MDUpdateAction struct{ Code uint8 }

var mdUpdateActionNames = map[uint8]string{0: "New", 1: "Change", 2: "Delete"}

func (a MDUpdateAction) String() string { return lookupUint8(mdUpdateActionNames, a.Code) }

// MDEntryType identifies the side or kind of a market-data entry.
type MDEntryType struct{ Code byte }

var mdEntryTypeNames = map[byte]string{'0': "Bid", '1': "Offer", 'J': "EmptyBook"}

func (t MDEntryType) String() string { return lookupByte(mdEntryTypeNames, t.Code) }

// SecurityAltIDSource identifies the class of an alternate security id.
type SecurityAltIDSource struct{ Code byte }

var securityAltIDSourceNames = map[byte]string{'4': "ISIN", '8': "ExchangeSymbol"}

func (s SecurityAltIDSource) String() string { return lookupByte(securityAltIDSourceNames, s.Code) }

// SecurityTradingStatus identifies the trading status of an instrument.
type SecurityTradingStatus struct{ Code uint8 }

var securityTradingStatusNames = map[uint8]string{
	2:   "TradingHalt",
	17:  "ReadyToTrade",
	18:  "NotAvailableForTrading",
	19:  "NotTradedOnThisMarket",
	20:  "UnknownOrInvalid",
	21:  "PreOpen",
	119: "DiscreteAuctionOpen",
	121: "DiscreteAuctionClose",
	122: "InstrumentHalt",
}

func (s SecurityTradingStatus) String() string { return lookupUint8(securityTradingStatusNames, s.Code) }

// TradingSessionID identifies which daily session a record belongs to.
type TradingSessionID struct{ Code uint8 }

var tradingSessionIDNames = map[uint8]string{0: "Null", 1: "Day", 3: "Morning", 5: "Evening"}

func (t TradingSessionID) String() string { return lookupUint8(tradingSessionIDNames, t.Code) }

// MarketSegmentID identifies a trading segment.
type MarketSegmentID struct{ Code byte }

var marketSegmentIDNames = map[byte]string{'D': "Derivatives"}

func (m MarketSegmentID) String() string { return lookupByte(marketSegmentIDNames, m.Code) }

// TradSesStatus identifies the lifecycle state of a trading session.
type TradSesStatus struct{ Code uint8 }

var tradSesStatusNames = map[uint8]string{1: "Halted", 2: "Open", 3: "Closed", 4: "PreOpen"}

func (s TradSesStatus) String() string { return lookupUint8(tradSesStatusNames, s.Code) }

// TradSesEvent identifies an event related to TradSesStatus.
type TradSesEvent struct{ Code uint8 }

var tradSesEventNames = map[uint8]string{
	0: "TradingResumes",
	1: "ChangeOfTradingSession",
	3: "ChangeOfTradingStatus",
}

func (e TradSesEvent) String() string { return lookupUint8(tradSesEventNames, e.Code) }

// NegativePrices identifies whether negative prices are eligible for an
// instrument.
type NegativePrices struct{ Code uint8 }

var negativePricesNames = map[uint8]string{0: "NotEligible", 1: "Eligible"}

func (n NegativePrices) String() string { return lookupUint8(negativePricesNames, n.Code) }

func lookupUint8(names map[uint8]string, code uint8) string {
	if name, ok := names[code]; ok {
		return name
	}

	return fmt.Sprintf("Unknown(%d)", code)
}

func lookupByte(names map[byte]string, code byte) string {
	if name, ok := names[code]; ok {
		return name
	}

	return fmt.Sprintf("Unknown(%d)", code)
}
