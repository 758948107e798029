package domain

import "strings"

// Direction represents the side of a trade (long or short).
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// ParseDirection converts a direction string to a Direction.
// Accepts "buy"/"sell" aliases used by older journal exports.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, true
	case "short", "sell":
		return Short, true
	default:
		return "", false
	}
}

// InstrumentClass identifies the asset class of a traded symbol.
type InstrumentClass string

const (
	Forex     InstrumentClass = "forex"
	Crypto    InstrumentClass = "crypto"
	Stock     InstrumentClass = "stock"
	Index     InstrumentClass = "index"
	Commodity InstrumentClass = "commodity"
)

// ParseInstrumentClass converts an explicit instrument tag to an
// InstrumentClass. An empty string means "no hint, classify from the symbol".
func ParseInstrumentClass(s string) (InstrumentClass, bool) {
	switch InstrumentClass(strings.ToLower(strings.TrimSpace(s))) {
	case Forex:
		return Forex, true
	case Crypto:
		return Crypto, true
	case Stock:
		return Stock, true
	case Index:
		return Index, true
	case Commodity:
		return Commodity, true
	default:
		return "", false
	}
}

// MarketSession is a labeled time-of-day trading window used as a grouping
// dimension for performance analysis.
type MarketSession string

const (
	SessionAsia        MarketSession = "Asia"
	SessionLondon      MarketSession = "London"
	SessionNewYork     MarketSession = "New York"
	SessionLondonClose MarketSession = "London Close"
	SessionOverlap     MarketSession = "Overlap"
	SessionOther       MarketSession = "Other"
)

// ParseMarketSession converts a session label to a MarketSession.
// Unknown or empty labels map to SessionOther.
func ParseMarketSession(s string) MarketSession {
	switch MarketSession(strings.TrimSpace(s)) {
	case SessionAsia:
		return SessionAsia
	case SessionLondon:
		return SessionLondon
	case SessionNewYork:
		return SessionNewYork
	case SessionLondonClose:
		return SessionLondonClose
	case SessionOverlap:
		return SessionOverlap
	default:
		return SessionOther
	}
}
