package onboarding

import (
	"context"
)

// Report is the decoded verdict from the external reputation service
type Report struct {
	Blacklisted bool
	Reason      string
}

// ReputationClient consults the external reputation service about a
// prospective user. Implementations must enforce a bounded timeout and
// return an error for anything other than an explicit, well-formed
// verdict; the guard treats every error as a rejection.
type ReputationClient interface {
	Check(ctx context.Context, email, phoneNumber string) (*Report, error)
}
