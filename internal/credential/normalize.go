// Package credential repairs and inspects private keys delivered through
// environment variables.
//
// Deployment platforms routinely mangle multi-line values: the key may arrive
// wrapped in quotes, with its line breaks escaped as a literal "\n", or with
// every line break replaced by a space. Normalize rebuilds a canonical PEM
// block from any of those forms.
package credential

import (
	"regexp"
	"strings"
)

// pemLineWidth is the body line length used by PEM encoders.
const pemLineWidth = 64

var headerPattern = regexp.MustCompile(`-----BEGIN ([A-Z0-9 ]+)-----`)

// Normalize returns raw as a canonical PEM block.
//
// Empty input yields ("", nil). Input without a PEM header is returned trimmed
// and unescaped but otherwise untouched. A header without its matching footer
// is a KindStructural error.
func Normalize(raw string) (string, error) {
	k := strings.TrimSpace(raw)
	if k == "" {
		return "", nil
	}
	if len(k) >= 2 && strings.HasPrefix(k, `"`) && strings.HasSuffix(k, `"`) {
		k = k[1 : len(k)-1]
	}
	k = strings.ReplaceAll(k, `\n`, "\n")

	loc := headerPattern.FindStringSubmatchIndex(k)
	if loc == nil {
		return k, nil
	}
	header := k[loc[0]:loc[1]]
	footer := "-----END " + k[loc[2]:loc[3]] + "-----"

	rest := k[loc[1]:]
	end := strings.Index(rest, footer)
	if end < 0 {
		return "", newError(KindStructural, "PEM header "+header+" has no matching footer", nil)
	}

	body := strings.Join(strings.Fields(rest[:end]), "")
	for strings.Contains(body, `\n`) {
		body = strings.ReplaceAll(body, `\n`, "")
	}

	var b strings.Builder
	b.Grow(len(header) + len(body) + len(body)/pemLineWidth + len(footer) + 4)
	b.WriteString(header)
	b.WriteByte('\n')
	for len(body) > pemLineWidth {
		b.WriteString(body[:pemLineWidth])
		b.WriteByte('\n')
		body = body[pemLineWidth:]
	}
	if body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	b.WriteByte('\n')
	return b.String(), nil
}
