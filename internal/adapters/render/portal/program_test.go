package portal

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbanet/portal-cli/internal/application"
	"github.com/nyumbanet/portal-cli/internal/domain"
)

func TestRenderProducesDashboard(t *testing.T) {
	snapshot := application.Snapshot{
		Session: domain.Session{Token: "jwt-abc", Identifier: "john_doe"},
	}

	out, err := Render(snapshot, RenderOptions{Now: time.Now()})
	require.NoError(t, err)
	assert.Contains(t, out, "NyumbaNet Customer Portal")
	assert.Contains(t, out, "john_doe")
}

func TestWithProgressReturnsFetchOutcome(t *testing.T) {
	var output bytes.Buffer

	err := WithProgress(context.Background(), &output, "Fetching", func(context.Context) error {
		return nil
	})
	require.NoError(t, err)

	err = WithProgress(context.Background(), &output, "Fetching", func(context.Context) error {
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)
}
