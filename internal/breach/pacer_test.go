package breach_test

import (
	"breachcheck/internal/breach"
	"breachcheck/pkg/domain"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacer_WaitSpacesCallsPerSource(t *testing.T) {
	p := breach.NewPacer(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, p.Wait(ctx, domain.SourceHIBPAccount))
	require.NoError(t, p.Wait(ctx, domain.SourceDeHashed))
	require.Less(t, time.Since(start), 40*time.Millisecond, "distinct sources are not paced together")

	require.NoError(t, p.Wait(ctx, domain.SourceHIBPAccount))
	require.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestPacer_ZeroDelay(t *testing.T) {
	p := breach.NewPacer(0)
	for range 10 {
		require.NoError(t, p.Wait(context.Background(), domain.SourceIntelX))
	}
	require.NoError(t, p.Pause(context.Background()))
}

func TestPacer_PauseHonorsContext(t *testing.T) {
	p := breach.NewPacer(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, p.Pause(ctx), context.Canceled)
	require.ErrorIs(t, p.Wait(ctx, domain.SourceIntelX), context.Canceled)
}
