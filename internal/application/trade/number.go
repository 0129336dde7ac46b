package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/domain/shared"
)

const numberGenerationAttempts = 5

// generateOrderNumber produces a unique document number for the given
// prefix, retrying on collisions before falling back to a UUID suffix.
func generateOrderNumber(ctx context.Context, exists func(context.Context, string) (bool, error), prefix string, date time.Time) (string, error) {
	for i := 0; i < numberGenerationAttempts; i++ {
		number := shared.NewDocumentNumber(prefix, date)
		taken, err := exists(ctx, number)
		if err != nil {
			return "", err
		}
		if !taken {
			return number, nil
		}
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s%s%s", prefix, date.Format("20060102"), suffix), nil
}
