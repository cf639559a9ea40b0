package sbe

// SecurityDefinition is template 18: a large flat preamble followed by five
// repeating groups and two variable-length strings (spec.md §4.4.5).
type SecurityDefinition struct {
	TotNumReports               uint32
	Symbol                      string
	SecurityID                  int32
	SecurityAltID               string
	SecurityAltIDSource         SecurityAltIDSource
	SecurityType                string
	CFICode                     string
	StrikePrice                 Decimal5NULL
	ContractMultiplier          int32
	SecurityTradingStatus       SecurityTradingStatus
	Currency                    string
	MarketSegmentID             MarketSegmentID
	TradingSessionID            TradingSessionID
	ExchangeTradingSessionID    int32
	Volatility                  Decimal5NULL
	HighLimitPx                 Decimal5NULL
	LowLimitPx                  Decimal5NULL
	MinPriceIncrement           Decimal5NULL
	MinPriceIncrementAmount     Decimal5NULL
	InitialMarginOnBuy          Decimal2NULL
	InitialMarginOnSell         Decimal2NULL
	InitialMarginSyntetic       Decimal2NULL
	TheorPrice                  Decimal5NULL
	TheorPriceLimit             Decimal5NULL
	UnderlyingQty               Decimal5NULL
	UnderlyingCurrency          string
	MaturityDate                uint32
	MaturityTime                uint32
	Flags                       FlagsSet
	MinPriceIncrementAmountCurr Decimal5NULL
	SettlPriceOpen              Decimal5NULL
	ValuationMethod             string
	RiskFreeRate                DoubleNULL
	FixedSpotDiscount           DoubleNULL
	ProjectedSpotDiscount       DoubleNULL
	SettlCurrency               string
	NegativePrices              NegativePrices
	DerivativeContractMultiplier int32
	InterestRateRiskUp          DoubleNULL
	InterestRateRiskDown        DoubleNULL
	RiskFreeRate2               DoubleNULL
	InterestRate2RiskUp         DoubleNULL
	InterestRate2RiskDown       DoubleNULL
	SettlPrice                  Decimal5NULL

	NoMDFeedTypes    GroupSize
	MDFeedTypes      []SecurityDefinitionMDFeedType
	NoUnderlyings    GroupSize
	Underlyings      []SecurityDefinitionUnderlying
	NoLegs           GroupSize
	Legs             []SecurityDefinitionLeg
	NoInstrAttrib    GroupSize
	InstrAttrib      []SecurityDefinitionInstrAttrib
	NoEvents         GroupSize
	Events           []SecurityDefinitionEvent

	SecurityDesc  string
	QuotationList string
}

// SecurityDefinitionMDFeedType is one entry of the NoMDFeedTypes group.
type SecurityDefinitionMDFeedType struct {
	MDFeedType   string
	MarketDepth  uint32
	MDBookType   uint32
}

// SecurityDefinitionUnderlying is one entry of the NoUnderlyings group.
type SecurityDefinitionUnderlying struct {
	UnderlyingSymbol     string
	UnderlyingBoard      string
	UnderlyingSecurityID int32
	UnderlyingFutureID   int32
}

// SecurityDefinitionLeg is one entry of the NoLegs group.
type SecurityDefinitionLeg struct {
	LegSymbol     string
	LegSecurityID int32
	LegRatioQty   int32
}

// SecurityDefinitionInstrAttrib is one entry of the NoInstrAttrib group.
type SecurityDefinitionInstrAttrib struct {
	InstrAttribType  int32
	InstrAttribValue string
}

// SecurityDefinitionEvent is one entry of the NoEvents group.
type SecurityDefinitionEvent struct {
	EventType int32
	EventDate uint32
	EventTime uint64
}

func parseSecurityDefinition(r *reader) SecurityDefinition {
	d := SecurityDefinition{
		TotNumReports:       r.u32(),
		Symbol:              r.fixedString(25),
		SecurityID:          r.i32(),
		SecurityAltID:       r.fixedString(25),
		SecurityAltIDSource: SecurityAltIDSource{Code: r.u8()},
		SecurityType:        r.fixedString(4),
		CFICode:             r.fixedString(6),
		StrikePrice:         r.decimal5Null(),
		ContractMultiplier:  r.i32(),
		SecurityTradingStatus: SecurityTradingStatus{Code: r.u8()},
		Currency:            r.fixedString(3),
	}

	d.MarketSegmentID = MarketSegmentID{Code: r.u8()}
	d.TradingSessionID = TradingSessionID{Code: r.u8()}
	d.ExchangeTradingSessionID = r.i32()
	d.Volatility = r.decimal5Null()
	d.HighLimitPx = r.decimal5Null()
	d.LowLimitPx = r.decimal5Null()
	d.MinPriceIncrement = r.decimal5Null()
	d.MinPriceIncrementAmount = r.decimal5Null()
	d.InitialMarginOnBuy = r.decimal2Null()
	d.InitialMarginOnSell = r.decimal2Null()
	d.InitialMarginSyntetic = r.decimal2Null()
	d.TheorPrice = r.decimal5Null()
	d.TheorPriceLimit = r.decimal5Null()
	d.UnderlyingQty = r.decimal5Null()
	d.UnderlyingCurrency = r.fixedString(3)
	d.MaturityDate = r.u32()
	d.MaturityTime = r.u32()
	d.Flags = decodeFlagsSet(r.u64())
	d.MinPriceIncrementAmountCurr = r.decimal5Null()
	d.SettlPriceOpen = r.decimal5Null()
	d.ValuationMethod = r.fixedString(4)
	d.RiskFreeRate = r.doubleNull()
	d.FixedSpotDiscount = r.doubleNull()
	d.ProjectedSpotDiscount = r.doubleNull()
	d.SettlCurrency = r.fixedString(3)
	d.NegativePrices = NegativePrices{Code: r.u8()}
	d.DerivativeContractMultiplier = r.i32()
	d.InterestRateRiskUp = r.doubleNull()
	d.InterestRateRiskDown = r.doubleNull()
	d.RiskFreeRate2 = r.doubleNull()
	d.InterestRate2RiskUp = r.doubleNull()
	d.InterestRate2RiskDown = r.doubleNull()
	d.SettlPrice = r.decimal5Null()

	// Each group is sized by its own GroupSize.NumInGroup. The original
	// decoder reused NoMDFeedTypes.NumInGroup for groups 3-5, which is a bug
	// this implementation does not replicate (spec.md §4.4.5, §9).
	d.NoMDFeedTypes = r.groupSize()
	d.MDFeedTypes = make([]SecurityDefinitionMDFeedType, d.NoMDFeedTypes.NumInGroup)
	for i := range d.MDFeedTypes {
		d.MDFeedTypes[i] = SecurityDefinitionMDFeedType{
			MDFeedType:  r.fixedString(25),
			MarketDepth: r.u32(),
			MDBookType:  r.u32(),
		}
	}

	d.NoUnderlyings = r.groupSize()
	d.Underlyings = make([]SecurityDefinitionUnderlying, d.NoUnderlyings.NumInGroup)
	for i := range d.Underlyings {
		d.Underlyings[i] = SecurityDefinitionUnderlying{
			UnderlyingSymbol:     r.fixedString(25),
			UnderlyingBoard:      r.fixedString(4),
			UnderlyingSecurityID: r.i32(),
			UnderlyingFutureID:   r.i32(),
		}
	}

	d.NoLegs = r.groupSize()
	d.Legs = make([]SecurityDefinitionLeg, d.NoLegs.NumInGroup)
	for i := range d.Legs {
		d.Legs[i] = SecurityDefinitionLeg{
			LegSymbol:     r.fixedString(25),
			LegSecurityID: r.i32(),
			LegRatioQty:   r.i32(),
		}
	}

	d.NoInstrAttrib = r.groupSize()
	d.InstrAttrib = make([]SecurityDefinitionInstrAttrib, d.NoInstrAttrib.NumInGroup)
	for i := range d.InstrAttrib {
		d.InstrAttrib[i] = SecurityDefinitionInstrAttrib{
			InstrAttribType:  r.i32(),
			InstrAttribValue: r.fixedString(31),
		}
	}

	d.NoEvents = r.groupSize()
	d.Events = make([]SecurityDefinitionEvent, d.NoEvents.NumInGroup)
	for i := range d.Events {
		d.Events[i] = SecurityDefinitionEvent{
			EventType: r.i32(),
			EventDate: r.u32(),
			EventTime: r.u64(),
		}
	}

	// Length-prefixed strings are read field-by-field (u16 length, then
	// that many bytes), never via a bulk struct copy: the wire shape has no
	// pointer, unlike some in-memory representations of the same type
	// (spec.md §9).
	d.SecurityDesc = r.lengthPrefixedString()
	d.QuotationList = r.lengthPrefixedString()

	return d
}
