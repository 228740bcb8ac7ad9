package ingest

import (
	"context"
	"time"

	"github.com/rmartinez-edu/enrollcast/internal/utils"
)

// GetJSONWithRetry descarga y decodifica JSON con hasta tres intentos.
func GetJSONWithRetry(ctx context.Context, c HTTPClient, url string, dst any) error {
	bo := utils.NewBackoff(100*time.Millisecond, 150*time.Millisecond, 2)
	return bo.Do(func(i int) error {
		return getJSON(ctx, c, url, dst)
	})
}
