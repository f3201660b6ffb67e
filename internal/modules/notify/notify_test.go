package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/mailer"
)

func TestOrderPlacedSendsConfirmation(t *testing.T) {
	mock := &mailer.Mock{}
	svc := NewService(mock, "FREESPORT", "no-reply@freesport.local", slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc.OrderPlaced(context.Background(), "buyer@example.com", "Anna", "FS-00042", "4500.00 ₽")

	require.Len(t, mock.Sent, 1)
	e := mock.Sent[0]
	assert.Equal(t, []string{"buyer@example.com"}, e.To)
	assert.Contains(t, e.Subject, "FS-00042")
	assert.Contains(t, e.TextBody, "Anna")
	assert.Contains(t, e.HTMLBody, "4500.00 ₽")
}

func TestOrderPlacedSwallowsSendFailure(t *testing.T) {
	mock := &mailer.Mock{Err: errors.New("smtp down")}
	svc := NewService(mock, "FREESPORT", "no-reply@freesport.local", slog.New(slog.NewTextHandler(io.Discard, nil)))

	// Must not panic or propagate.
	svc.OrderPlaced(context.Background(), "buyer@example.com", "", "FS-00001", "100.00 ₽")
	assert.Len(t, mock.Sent, 1)
}
