package usecases

import (
	"testing"

	ingressentities "github.com/RodolfoBonis/spooliq/features/ingress/domain/entities"
	orderentities "github.com/RodolfoBonis/spooliq/features/orders/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name   string
		result ingressentities.BotResult
		want   orderentities.Status
	}{
		{
			name:   "completed maps directly",
			result: ingressentities.BotResult{Status: ingressentities.ResultCompleted},
			want:   orderentities.StatusCompleted,
		},
		{
			name:   "failed maps directly",
			result: ingressentities.BotResult{Status: ingressentities.ResultFailed},
			want:   orderentities.StatusError,
		},
		{
			name:   "partial with both completed and failed counts stays partial",
			result: ingressentities.BotResult{Status: ingressentities.ResultPartial, Completed: 5, Failed: 5},
			want:   orderentities.StatusPartial,
		},
		{
			name:   "partial with only completed counts resolves to completed",
			result: ingressentities.BotResult{Status: ingressentities.ResultPartial, Completed: 5, Failed: 0},
			want:   orderentities.StatusCompleted,
		},
		{
			name:   "partial with neither completed nor failed counts resolves to error",
			result: ingressentities.BotResult{Status: ingressentities.ResultPartial, Completed: 0, Failed: 0},
			want:   orderentities.StatusError,
		},
		{
			name:   "processing maps to processing",
			result: ingressentities.BotResult{Status: ingressentities.ResultProcessing},
			want:   orderentities.StatusProcessing,
		},
		{
			name:   "in_progress also maps to processing",
			result: ingressentities.BotResult{Status: ingressentities.ResultInProgress},
			want:   orderentities.StatusProcessing,
		},
		{
			name:   "cancelled maps directly",
			result: ingressentities.BotResult{Status: ingressentities.ResultCancelled},
			want:   orderentities.StatusCancelled,
		},
		{
			name:   "an unrecognized status falls back to processing",
			result: ingressentities.BotResult{Status: ingressentities.ResultStatus("unknown")},
			want:   orderentities.StatusProcessing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, deriveStatus(tc.result))
		})
	}
}
