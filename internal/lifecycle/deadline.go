package lifecycle

import (
	"fmt"
	"time"

	"github.com/feitoo/makerboard/internal/models"
)

// deadlineDateFormat is the full pt-BR date used in deadline sentences.
const deadlineDateFormat = "02/01/2006"

// NarrateDeadline turns a deadline and the order's live status into one
// maker-facing sentence. Statuses where a deadline carries no meaning get a
// fixed sentence ignoring the date.
func NarrateDeadline(deadline time.Time, status models.OrderStatus) string {
	date := deadline.Format(deadlineDateFormat)

	switch status {
	case models.StatusAwaitingMaker:
		return fmt.Sprintf("Você tem até %s para confirmar o pedido.", date)
	case models.StatusOnGoing:
		return fmt.Sprintf("Você tem até %s para finalizar a produção.", date)
	case models.StatusDelayed:
		return fmt.Sprintf("O prazo de entrega era %s.", date)
	case models.StatusNewDeadline:
		return fmt.Sprintf("Você sugeriu um novo prazo para %s.", date)
	case models.StatusReady:
		return fmt.Sprintf("O cliente tem até %s para retirar o pedido.", date)
	case models.StatusAwaitingConfirmation:
		return fmt.Sprintf("Seu pagamento cairá até %s.", date)
	case models.StatusRefundInProcess:
		return "Você recusou este pedido."
	case models.StatusRefundInAnalysis:
		return "O pedido está em análise de reembolso."
	case models.StatusRefunded:
		return "Este pedido foi reembolsado ao cliente."
	case models.StatusDone:
		return "O pedido foi concluído!"
	case models.StatusPartialRefundInProcess:
		return "Um reembolso parcial foi aprovado e está em processamento."
	case models.StatusPartialRefund:
		return "Reembolso parcial concluído."
	default:
		return "Prazo não aplicável."
	}
}

// FormatProductionTime renders an estimated production time in days for the
// order details view.
func FormatProductionTime(days int) string {
	switch days {
	case 0:
		return "Pronta entrega"
	case 1:
		return "1 dia de produção"
	default:
		return fmt.Sprintf("%d dias de produção", days)
	}
}
