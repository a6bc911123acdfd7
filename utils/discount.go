package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// codeCharset deliberately omits nothing: codes are machine-checked, not
// read over the phone, so the full uppercase alphanumeric set is fine.
const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var codePattern = regexp.MustCompile(`^` + RewardCodePrefix + `-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

// GenerateDiscountCode produces a reward code of the form SAVE-XXXX-XXXX
// using crypto/rand. Uniqueness is enforced by the database unique index;
// with 36^8 combinations a collision retry is practically never needed.
func GenerateDiscountCode() string {
	return fmt.Sprintf("%s-%s-%s", RewardCodePrefix, randomGroup(4), randomGroup(4))
}

// ValidDiscountCodeFormat reports whether a string looks like a generated
// reward code.
func ValidDiscountCodeFormat(code string) bool {
	return codePattern.MatchString(code)
}

func randomGroup(n int) string {
	group := make([]byte, n)
	for i := range group {
		r, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to the first character rather than panic mid-checkout.
			group[i] = codeCharset[0]
			continue
		}
		group[i] = codeCharset[r.Int64()]
	}
	return string(group)
}
