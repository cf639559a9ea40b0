package sbe

// SequenceReset is template 2.
type SequenceReset struct {
	NewSeqNo uint32
}

func parseSequenceReset(r *reader) SequenceReset {
	return SequenceReset{NewSeqNo: r.u32()}
}

// SecurityStatus is template 9.
type SecurityStatus struct {
	SecurityID            int32
	Symbol                string
	SecurityTradingStatus SecurityTradingStatus
	HighLimitPx           Decimal5NULL
	LowLimitPx            Decimal5NULL
	InitialMarginOnBuy    Decimal2NULL
	InitialMarginOnSell   Decimal2NULL
	InitialMarginSyntetic Decimal2NULL
}

func parseSecurityStatus(r *reader) SecurityStatus {
	return SecurityStatus{
		SecurityID:            r.i32(),
		Symbol:                r.fixedString(25),
		SecurityTradingStatus: SecurityTradingStatus{Code: r.u8()},
		HighLimitPx:           r.decimal5Null(),
		LowLimitPx:            r.decimal5Null(),
		InitialMarginOnBuy:    r.decimal2Null(),
		InitialMarginOnSell:   r.decimal2Null(),
		InitialMarginSyntetic: r.decimal2Null(),
	}
}

// SecurityDefinitionUpdateReport is template 10.
type SecurityDefinitionUpdateReport struct {
	SecurityID     int32
	Volatility     Decimal5NULL
	TheorPrice     Decimal5NULL
	TheorPriceLimit Decimal5NULL
}

func parseSecurityDefinitionUpdateReport(r *reader) SecurityDefinitionUpdateReport {
	return SecurityDefinitionUpdateReport{
		SecurityID:      r.i32(),
		Volatility:      r.decimal5Null(),
		TheorPrice:      r.decimal5Null(),
		TheorPriceLimit: r.decimal5Null(),
	}
}

// TradingSessionStatus is template 11.
type TradingSessionStatus struct {
	TradSesOpenTime                uint64
	TradSesCloseTime               uint64
	TradSesIntermClearingStartTime uint64
	TradSesIntermClearingEndTime   uint64
	TradingSessionID               TradingSessionID
	ExchangeTradingSessionID       uint64
	TradSesStatus                  TradSesStatus
	MarketSegmentID                MarketSegmentID
	TradSesEvent                   TradSesEvent
}

func parseTradingSessionStatus(r *reader) TradingSessionStatus {
	return TradingSessionStatus{
		TradSesOpenTime:                r.u64(),
		TradSesCloseTime:               r.u64(),
		TradSesIntermClearingStartTime: r.u64(),
		TradSesIntermClearingEndTime:   r.u64(),
		TradingSessionID:               TradingSessionID{Code: r.u8()},
		ExchangeTradingSessionID:       r.u64(),
		TradSesStatus:                  TradSesStatus{Code: r.u8()},
		MarketSegmentID:                MarketSegmentID{Code: r.u8()},
		TradSesEvent:                   TradSesEvent{Code: r.u8()},
	}
}

// OrderUpdate is template 15.
type OrderUpdate struct {
	MDEntryID      int64
	MDEntryPx      Decimal5
	MDEntrySize    int64
	MDFlags        MDFlagsSet
	MDFlags2       MDFlags2Set
	SecurityID     int32
	RptSeq         uint32
	MDUpdateAction MDUpdateAction
	MDEntryType    MDEntryType
}

func parseOrderUpdate(r *reader) OrderUpdate {
	return OrderUpdate{
		MDEntryID:      r.i64(),
		MDEntryPx:      r.decimal5(),
		MDEntrySize:    r.i64(),
		MDFlags:        decodeMDFlagsSet(r.u64()),
		MDFlags2:       decodeMDFlags2Set(r.u64()),
		SecurityID:     r.i32(),
		RptSeq:         r.u32(),
		MDUpdateAction: MDUpdateAction{Code: r.u8()},
		MDEntryType:    MDEntryType{Code: r.u8()},
	}
}

// OrderExecution is template 16.
type OrderExecution struct {
	MDEntryID      int64
	MDEntryPx      Decimal5NULL
	MDEntrySize    int64
	LastPx         Decimal5
	LastQty        int64
	TradeID        int64
	MDFlags        MDFlagsSet
	MDFlags2       MDFlags2Set
	SecurityID     int32
	RptSeq         uint32
	MDUpdateAction MDUpdateAction
	MDEntryType    MDEntryType
}

func parseOrderExecution(r *reader) OrderExecution {
	return OrderExecution{
		MDEntryID:      r.i64(),
		MDEntryPx:      r.decimal5Null(),
		MDEntrySize:    r.i64(),
		LastPx:         r.decimal5(),
		LastQty:        r.i64(),
		TradeID:        r.i64(),
		MDFlags:        decodeMDFlagsSet(r.u64()),
		MDFlags2:       decodeMDFlags2Set(r.u64()),
		SecurityID:     r.i32(),
		RptSeq:         r.u32(),
		MDUpdateAction: MDUpdateAction{Code: r.u8()},
		MDEntryType:    MDEntryType{Code: r.u8()},
	}
}

// OrderBookSnapshotEntry is one entry of OrderBookSnapshot's repeating group.
type OrderBookSnapshotEntry struct {
	MDEntryID   int64
	TransactTime uint64
	MDEntryPx   Decimal5NULL
	MDEntrySize int64
	TradeID     int64
	MDFlags     MDFlagsSet
	MDFlags2    MDFlags2Set
	MDEntryType MDEntryType
}

func parseOrderBookSnapshotEntry(r *reader) OrderBookSnapshotEntry {
	return OrderBookSnapshotEntry{
		MDEntryID:    r.i64(),
		TransactTime: r.u64(),
		MDEntryPx:    r.decimal5Null(),
		MDEntrySize:  r.i64(),
		TradeID:      r.i64(),
		MDFlags:      decodeMDFlagsSet(r.u64()),
		MDFlags2:     decodeMDFlags2Set(r.u64()),
		MDEntryType:  MDEntryType{Code: r.u8()},
	}
}

// OrderBookSnapshot is template 17.
type OrderBookSnapshot struct {
	SecurityID               int32
	LastMsgSeqNumProcessed   uint32
	RptSeq                   uint32
	ExchangeTradingSessionID uint32
	NoMDEntries              GroupSize
	MDEntries                []OrderBookSnapshotEntry
}

func parseOrderBookSnapshot(r *reader) OrderBookSnapshot {
	s := OrderBookSnapshot{
		SecurityID:               r.i32(),
		LastMsgSeqNumProcessed:   r.u32(),
		RptSeq:                   r.u32(),
		ExchangeTradingSessionID: r.u32(),
	}

	s.NoMDEntries = r.groupSize()
	s.MDEntries = make([]OrderBookSnapshotEntry, s.NoMDEntries.NumInGroup)

	for i := range s.MDEntries {
		s.MDEntries[i] = parseOrderBookSnapshotEntry(r)
	}

	return s
}

// SecurityMassStatusEntry is one entry of SecurityMassStatus's repeating
// group. SecurityMassStatus itself has no assigned template id in this
// schema and is never dispatched; the type and its unexported parser are
// kept for schema completeness, but nothing in this package decodes into
// them.
type SecurityMassStatusEntry struct {
	SecurityID             int32
	SecurityTradingStatus  SecurityTradingStatus
}

func parseSecurityMassStatusEntry(r *reader) SecurityMassStatusEntry {
	return SecurityMassStatusEntry{
		SecurityID:            r.i32(),
		SecurityTradingStatus: SecurityTradingStatus{Code: r.u8()},
	}
}

// SecurityMassStatus groups per-security trading status changes under a
// single report. See SecurityMassStatusEntry.
type SecurityMassStatus struct {
	NoRelatedSym GroupSize2
	Entries      []SecurityMassStatusEntry
}

func parseSecurityMassStatus(r *reader) SecurityMassStatus {
	s := SecurityMassStatus{NoRelatedSym: r.groupSize2()}
	s.Entries = make([]SecurityMassStatusEntry, s.NoRelatedSym.NumInGroup)

	for i := range s.Entries {
		s.Entries[i] = parseSecurityMassStatusEntry(r)
	}

	return s
}
