package settings

// ProviderKind identifies which upstream market-data API a refresh cycle
// should use.
type ProviderKind int

const (
	// ProviderNone means no usable credentials are stored; price fetches
	// short-circuit to an empty result.
	ProviderNone ProviderKind = iota
	// ProviderAlpaca is the batched snapshot API, preferred when both its
	// key and secret are present.
	ProviderAlpaca
	// ProviderFinnhub is the per-symbol quote API, used as the fallback.
	ProviderFinnhub
)

// String returns the provider's wire name.
func (k ProviderKind) String() string {
	switch k {
	case ProviderAlpaca:
		return "alpaca"
	case ProviderFinnhub:
		return "finnhub"
	default:
		return "none"
	}
}

// Selection is the outcome of resolving stored credentials: the chosen
// provider plus the credentials it needs.
type Selection struct {
	Kind   ProviderKind
	Key    string
	Secret string
}

// ResolveProvider picks the usable price provider from stored credentials.
// Alpaca wins when both its key and secret are non-empty; Finnhub is the
// fallback; otherwise ProviderNone. Credentials are re-read on every call
// so a key saved between refresh cycles takes effect on the next one.
func (s *Service) ResolveProvider() Selection {
	alpacaKey := s.credential(KeyAlpacaKeyID)
	alpacaSecret := s.credential(KeyAlpacaSecret)
	if alpacaKey != "" && alpacaSecret != "" {
		return Selection{Kind: ProviderAlpaca, Key: alpacaKey, Secret: alpacaSecret}
	}

	if finnhubKey := s.credential(KeyFinnhubAPIKey); finnhubKey != "" {
		return Selection{Kind: ProviderFinnhub, Key: finnhubKey}
	}

	return Selection{Kind: ProviderNone}
}
