package enum

import (
	"encoding/json"
	"strings"
)

// ViewKind is the dashboard a signed-in user is routed to
type ViewKind int

const (
	ViewDefault ViewKind = iota
	ViewInvestor
	ViewManager
	ViewMarketing
)

func (v ViewKind) String() string {
	switch v {
	case ViewInvestor:
		return "investor"
	case ViewManager:
		return "manager"
	case ViewMarketing:
		return "marketing"
	default:
		return "default"
	}
}

func (v ViewKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *ViewKind) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "investor":
		*v = ViewInvestor
	case "manager":
		*v = ViewManager
	case "marketing":
		*v = ViewMarketing
	default:
		*v = ViewDefault
	}
	return nil
}

// Static allow-lists. They are disjoint, so at most one matches.
var (
	InvestorEmails  = []string{"investor@demo.com", "analyst@demo.com"}
	ManagerEmails   = []string{"manager@demo.com", "owner@demo.com"}
	MarketingEmails = []string{"marketing@demo.com", "customerexperience@demo.com"}
)

// MarketingDataAllowList gates the marketing metrics function.
var MarketingDataAllowList = []string{"marketing@demo.com", "customerexperience@demo.com"}

// ViewForEmail picks the dashboard for an email; unknown emails get ViewDefault.
func ViewForEmail(email string) ViewKind {
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case contains(InvestorEmails, email):
		return ViewInvestor
	case contains(ManagerEmails, email):
		return ViewManager
	case contains(MarketingEmails, email):
		return ViewMarketing
	default:
		return ViewDefault
	}
}

// CanReadMarketingData is an exact, case-sensitive allow-list check.
func CanReadMarketingData(email string) bool {
	return contains(MarketingDataAllowList, email)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
