package export

import (
	"fmt"

	"github.com/amirkabiri/google-authenticator-exporter/pkg/otpauth"
	"github.com/amirkabiri/google-authenticator-exporter/pkg/slug"
)

const maxNamePart = 48

// FileName returns "issuer-account.ext" with both parts slugified. Missing
// parts are replaced with "unknown" and "account".
func FileName(c otpauth.Credential, ext string) string {
	issuer := slug.Make(c.Issuer, slug.MaxLength(maxNamePart))
	if issuer == "" {
		issuer = "unknown"
	}
	account := slug.Make(c.Account, slug.MaxLength(maxNamePart))
	if account == "" {
		account = "account"
	}
	return fmt.Sprintf("%s-%s.%s", issuer, account, ext)
}
