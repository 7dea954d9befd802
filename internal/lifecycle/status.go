// Package lifecycle derives display-ready views from an order's append-only
// status history: per-status display metadata, the narrated timeline and the
// deadline sentence. Everything here is pure; inputs are never mutated and
// each call recomputes from scratch.
package lifecycle

import (
	"strings"

	"github.com/feitoo/makerboard/internal/models"
)

// Highlight colors shared by the taxonomy and the timeline narration.
const (
	colorYellow    = "#eab308"
	colorBlue      = "#3b82f6"
	colorPurple    = "#a855f7"
	colorGreen     = "#22c55e"
	colorDarkGreen = "#1e9650"
	colorRed       = "#ef4444"
	colorAmber     = "#f59e0b"
	colorNeutral   = "#6b7280"
)

// statusTable maps every known status to its display metadata. Initialized
// once, read-only afterwards. Order matters: it is also the order of the
// dashboard filter options.
var statusOrder = []models.OrderStatus{
	models.StatusAwaitingPayment,
	models.StatusAwaitingMaker,
	models.StatusOnGoing,
	models.StatusReady,
	models.StatusDelayed,
	models.StatusDone,
	models.StatusNewDeadline,
	models.StatusAwaitingConfirmation,
	models.StatusRefundInAnalysis,
	models.StatusRefundInProcess,
	models.StatusPartialRefundInProcess,
	models.StatusPartialRefund,
	models.StatusRefunded,
}

var statusTable = map[models.OrderStatus]models.StatusInfo{
	models.StatusAwaitingPayment:        {Label: "Aguardando Pagamento", Color: colorYellow, Icon: "credit-card"},
	models.StatusAwaitingMaker:          {Label: "Novo Pedido", Color: colorBlue, Icon: "package"},
	models.StatusOnGoing:                {Label: "Em Produção", Color: colorPurple, Icon: "clock"},
	models.StatusReady:                  {Label: "Pronto para Entrega", Color: colorGreen, Icon: "truck"},
	models.StatusDelayed:                {Label: "Atrasado", Color: colorRed, Icon: "alert-triangle"},
	models.StatusDone:                   {Label: "Finalizado", Color: colorDarkGreen, Icon: "check-circle"},
	models.StatusNewDeadline:            {Label: "Novo Prazo Solicitado", Color: colorBlue, Icon: "clock"},
	models.StatusAwaitingConfirmation:   {Label: "Aguardando Confirmação", Color: colorBlue, Icon: "check-circle"},
	models.StatusRefundInAnalysis:       {Label: "Reembolso em Análise", Color: colorRed, Icon: "alert-triangle"},
	models.StatusRefundInProcess:        {Label: "Reembolso em Processamento", Color: colorYellow, Icon: "credit-card"},
	models.StatusPartialRefundInProcess: {Label: "Reembolso Parcial em Processamento", Color: colorYellow, Icon: "credit-card"},
	models.StatusPartialRefund:          {Label: "Reembolso Parcial", Color: colorDarkGreen, Icon: "check-circle"},
	models.StatusRefunded:               {Label: "Reembolsado", Color: colorDarkGreen, Icon: "check-circle"},
}

// Describe returns the display metadata for a status. Unknown statuses get a
// humanized neutral fallback instead of an error, so a new backend status
// degrades gracefully rather than breaking the dashboard.
func Describe(status models.OrderStatus) models.StatusInfo {
	if info, ok := statusTable[status]; ok {
		return info
	}
	return models.StatusInfo{
		Label: strings.ReplaceAll(string(status), "_", " "),
		Color: colorNeutral,
		Icon:  "package",
	}
}

// StatusOptions returns the ordered value/label pairs for the dashboard
// status filter, with the catch-all option first.
func StatusOptions() []models.StatusOption {
	options := make([]models.StatusOption, 0, len(statusOrder)+1)
	options = append(options, models.StatusOption{Value: "", Label: "Todos os status"})
	for _, s := range statusOrder {
		options = append(options, models.StatusOption{Value: string(s), Label: statusTable[s].Label})
	}
	return options
}
