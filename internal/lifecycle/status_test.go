package lifecycle

import (
	"testing"

	"github.com/feitoo/makerboard/internal/models"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		status    models.OrderStatus
		wantLabel string
		wantColor string
	}{
		{"awaiting maker", models.StatusAwaitingMaker, "Novo Pedido", colorBlue},
		{"on going", models.StatusOnGoing, "Em Produção", colorPurple},
		{"delayed", models.StatusDelayed, "Atrasado", colorRed},
		{"done", models.StatusDone, "Finalizado", colorDarkGreen},
		{"refund in process", models.StatusRefundInProcess, "Reembolso em Processamento", colorYellow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Describe(tt.status)
			if info.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", info.Label, tt.wantLabel)
			}
			if info.Color != tt.wantColor {
				t.Errorf("color = %q, want %q", info.Color, tt.wantColor)
			}
			if info.Icon == "" {
				t.Error("icon should never be empty")
			}
		})
	}
}

func TestDescribe_UnknownStatusFallback(t *testing.T) {
	info := Describe(models.OrderStatus("some_future_status"))

	if info.Label != "some future status" {
		t.Errorf("fallback label = %q, want humanized status", info.Label)
	}
	if info.Color != colorNeutral {
		t.Errorf("fallback color = %q, want neutral", info.Color)
	}
	if info.Icon != "package" {
		t.Errorf("fallback icon = %q, want generic", info.Icon)
	}
}

func TestDescribe_TotalOverKnownStatuses(t *testing.T) {
	for _, s := range statusOrder {
		if Describe(s).Label == "" {
			t.Errorf("status %s has no label", s)
		}
	}
}

func TestStatusOptions(t *testing.T) {
	options := StatusOptions()

	if len(options) != len(statusOrder)+1 {
		t.Fatalf("expected %d options, got %d", len(statusOrder)+1, len(options))
	}
	if options[0].Value != "" || options[0].Label != "Todos os status" {
		t.Errorf("first option should be the catch-all, got %+v", options[0])
	}
	if options[1].Value != string(models.StatusAwaitingPayment) {
		t.Errorf("options out of order: second is %s", options[1].Value)
	}
}
