package service

import (
	"errors"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
)

var ErrPrincipalNotFound = errors.New("principal_not_found")

// PrincipalDirectory looks principals up by username without checking any
// password. Refresh uses it to pick up role changes and removals.
type PrincipalDirectory interface {
	FindByUsername(username string) (domain.Principal, bool)
}

// CredentialVerifier checks username/password pairs against a fixed list.
type CredentialVerifier struct {
	principals []domain.Principal
}

// NewCredentialVerifier copies principals; later changes to the slice are
// not observed.
func NewCredentialVerifier(principals []domain.Principal) *CredentialVerifier {
	return &CredentialVerifier{principals: append([]domain.Principal(nil), principals...)}
}

// Verify returns the first principal whose username matches ignoring case
// and whose password matches exactly.
func (v *CredentialVerifier) Verify(username, password string) (domain.Principal, error) {
	for _, p := range v.principals {
		if strings.EqualFold(p.Username, username) && cryptox.EqualStrings(p.Password, password) {
			return p, nil
		}
	}
	return domain.Principal{}, ErrPrincipalNotFound
}

func (v *CredentialVerifier) FindByUsername(username string) (domain.Principal, bool) {
	for _, p := range v.principals {
		if strings.EqualFold(p.Username, username) {
			return p, true
		}
	}
	return domain.Principal{}, false
}
