package catalog

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

const (
	productCodePrefix  = "SP"
	productCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	productCodeLength  = 6
)

// GenerateProductCode returns a candidate product code: the SP prefix
// followed by 6 random alphanumeric characters. Uniqueness is checked
// by the caller against the repository, retrying on collision.
func GenerateProductCode() string {
	var b strings.Builder
	b.WriteString(productCodePrefix)
	for i := 0; i < productCodeLength; i++ {
		b.WriteByte(productCodeCharset[rand.Intn(len(productCodeCharset))])
	}
	return b.String()
}

// FallbackProductCode derives a code from the product id, used after
// repeated random collisions
func FallbackProductCode(id uuid.UUID) string {
	hexID := strings.ReplaceAll(id.String(), "-", "")
	return productCodePrefix + strings.ToUpper(hexID[:productCodeLength])
}
