package lifecycle

import (
	"fmt"
	"sort"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/feitoo/makerboard/internal/utils"
)

// entryTimeFormat is the short pt-BR form shown next to each timeline entry.
const entryTimeFormat = "02/01 15:04"

// narrationInput is everything a per-status narrator may consult: whether
// this event is the order's still-open state, the neighbouring events, and
// the one flag computed over the whole log.
type narrationInput struct {
	event           models.HistoryEvent
	isCurrent       bool
	prev            *models.HistoryEvent
	next            *models.HistoryEvent
	refundRequested bool
}

// narration is the derived wording for one event. An empty title drops the
// event from the timeline.
type narration struct {
	title       string
	description string
	color       string
}

// narrators is the per-status narration table. Statuses missing here
// (awaiting_payment is filtered earlier, unknown values from newer backends)
// are silently omitted: partial output beats a broken page.
var narrators = map[models.OrderStatus]func(narrationInput) narration{
	models.StatusAwaitingMaker:          narrateAwaitingMaker,
	models.StatusOnGoing:                narrateOnGoing,
	models.StatusDelayed:                narrateDelayed,
	models.StatusNewDeadline:            narrateNewDeadline,
	models.StatusReady:                  narrateReady,
	models.StatusAwaitingConfirmation:   narrateAwaitingConfirmation,
	models.StatusDone:                   narrateDone,
	models.StatusRefundInAnalysis:       narrateRefundInAnalysis,
	models.StatusRefundInProcess:        narrateRefundInProcess,
	models.StatusRefunded:               narrateRefunded,
	models.StatusPartialRefundInProcess: narratePartialRefundInProcess,
	models.StatusPartialRefund:          narratePartialRefund,
}

// Reconstruct derives the narrated timeline from an order's event history
// and its live status. Events need not arrive sorted; awaiting_payment
// events precede the real lifecycle and are dropped up front. The result is
// ordered newest-first and at most one entry is marked current - the last
// occurrence of the live status in the sorted history.
func Reconstruct(events []models.HistoryEvent, current models.OrderStatus) []models.TimelineEntry {
	if len(events) == 0 {
		return []models.TimelineEntry{}
	}

	history := make([]models.HistoryEvent, 0, len(events))
	for _, e := range events {
		if e.Status != models.StatusAwaitingPayment {
			history = append(history, e)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].EventTime.Before(history[j].EventTime)
	})

	// Single pre-pass: done and refund_in_process read differently when the
	// client opened a refund dispute anywhere in the log.
	refundRequested := false
	for _, e := range history {
		if e.Status == models.StatusRefundInAnalysis {
			refundRequested = true
			break
		}
	}

	currentIdx := utils.LastIndexFunc(history, func(e models.HistoryEvent) bool {
		return e.Status == current
	})

	entries := make([]models.TimelineEntry, 0, len(history))
	for i, e := range history {
		narrate, ok := narrators[e.Status]
		if !ok {
			continue
		}

		in := narrationInput{
			event:           e,
			isCurrent:       i == currentIdx,
			refundRequested: refundRequested,
		}
		if i > 0 {
			in.prev = &history[i-1]
		}
		if i+1 < len(history) {
			in.next = &history[i+1]
		}

		n := narrate(in)
		if n.title == "" {
			continue
		}

		emphasis := models.EmphasisCompleted
		if in.isCurrent {
			emphasis = models.EmphasisCurrent
		}
		entries = append(entries, models.TimelineEntry{
			Time:           e.EventTime.Format(entryTimeFormat),
			Title:          n.title,
			Description:    n.description,
			Emphasis:       emphasis,
			HighlightColor: n.color,
		})
	}

	// Newest first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func narrateAwaitingMaker(in narrationInput) narration {
	if in.isCurrent {
		return narration{
			title:       "Aguardando sua confirmação",
			description: "Aceite o pedido para iniciar a produção.",
		}
	}
	if in.next != nil && (in.next.Status == models.StatusRefundInProcess || in.next.Status == models.StatusRefunded) {
		return narration{
			title:       "Você recusou o pedido",
			description: "O pedido não foi iniciado e o cliente foi reembolsado.",
			color:       colorRed,
		}
	}
	return narration{
		title:       "Pedido Aceito",
		description: "Você aceitou o pedido.",
	}
}

func narrateOnGoing(in narrationInput) narration {
	if in.prev != nil && in.prev.Status == models.StatusNewDeadline {
		if in.isCurrent {
			return narration{
				title:       "Produção Retomada",
				description: "O cliente aceitou o novo prazo e a produção continua.",
			}
		}
		return narration{
			title:       "Produção Continuada",
			description: "A produção foi retomada após o cliente aceitar o novo prazo.",
		}
	}
	if in.isCurrent {
		return narration{
			title:       "Em Produção",
			description: "O pedido está em produção.",
		}
	}
	return narration{
		title:       "Produção Iniciada",
		description: "Você iniciou a produção do pedido.",
	}
}

func narrateDelayed(in narrationInput) narration {
	if in.isCurrent {
		return narration{
			title:       "Produção Atrasada",
			description: "O prazo original expirou. Finalize o pedido, negocie um novo prazo ou cancele.",
			color:       colorRed,
		}
	}
	return narration{
		title:       "A Produção Atrasou",
		description: "A produção ultrapassou o prazo de entrega original.",
		color:       colorRed,
	}
}

func narrateNewDeadline(in narrationInput) narration {
	if in.isCurrent {
		return narration{
			title:       "Aguardando Resposta do Cliente",
			description: "Você sugeriu um novo prazo e aguarda a aprovação do cliente.",
			color:       colorAmber,
		}
	}
	if in.next != nil {
		switch in.next.Status {
		case models.StatusRefundInProcess:
			return narration{
				title:       "Novo Prazo Recusado",
				description: "O cliente recusou o novo prazo e solicitou o reembolso.",
				color:       colorRed,
			}
		case models.StatusReady:
			// Maker finished before the client formally answered.
			return narration{
				title:       "Novo Prazo (Superado)",
				description: "Você finalizou o pedido antes da resposta formal do cliente sobre o novo prazo.",
				color:       colorGreen,
			}
		}
	}
	return narration{
		title:       "Novo Prazo Aceito",
		description: "O cliente aceitou o novo prazo que você sugeriu.",
		color:       colorGreen,
	}
}

func narrateReady(in narrationInput) narration {
	if in.isCurrent {
		return narration{
			title:       "Aguardando Retirada",
			description: "Você marcou o pedido como pronto. O cliente foi notificado.",
		}
	}
	return narration{
		title:       "Produção Finalizada",
		description: "Você finalizou a produção do pedido.",
	}
}

func narrateAwaitingConfirmation(in narrationInput) narration {
	if in.isCurrent {
		return narration{
			title:       "Aguardando Confirmação do Cliente",
			description: "Aguarde o cliente confirmar o recebimento para o pagamento ser liberado.",
		}
	}
	return narration{
		title:       "Pedido Entregue",
		description: "O cliente confirmou o recebimento.",
	}
}

func narrateDone(in narrationInput) narration {
	if in.refundRequested {
		return narration{
			title:       "Disputa Encerrada / Reembolso Negado",
			description: "A análise da disputa foi favorável a você. O pagamento foi liberado.",
			color:       colorGreen,
		}
	}
	return narration{
		title:       "Pedido Finalizado",
		description: "O pedido foi concluído e o pagamento liberado.",
		color:       colorGreen,
	}
}

func narrateRefundInAnalysis(in narrationInput) narration {
	n := narration{
		description: "O cliente solicitou reembolso após a entrega. Nossa equipe está analisando o caso.",
	}
	if in.isCurrent {
		n.title = "Reembolso em Análise"
		n.color = colorAmber
	} else {
		n.title = "Reembolso Solicitado"
	}
	return n
}

func narrateRefundInProcess(in narrationInput) narration {
	if in.refundRequested {
		// Refund approved after a client-opened dispute.
		n := narration{description: "O reembolso do cliente foi aprovado por nossa equipe."}
		if in.isCurrent {
			n.title = "Reembolso em Processo"
			n.color = colorAmber
		} else {
			n.title = "Reembolso Aprovado"
			n.color = colorGreen
		}
		return n
	}

	if in.prev != nil && (in.prev.Status == models.StatusDelayed || in.prev.Status == models.StatusNewDeadline) {
		// Client walked away after a delay or a rejected new deadline.
		n := narration{description: "O cliente solicitou o reembolso do pedido."}
		if in.isCurrent {
			n.title = "Reembolso em Processo"
			n.color = colorAmber
		} else {
			n.title = "Reembolso Solicitado"
			n.color = colorRed
		}
		return n
	}

	// Maker-initiated cancellation; quote the reason when one was given.
	reasonText := "O motivo não foi especificado."
	if in.event.Reason != "" {
		reasonText = fmt.Sprintf("Motivo: %s", in.event.Reason)
	}
	n := narration{
		description: fmt.Sprintf("Você cancelou o pedido. %s O cliente será reembolsado.", reasonText),
	}
	if in.isCurrent {
		n.title = "Cancelamento em Processo"
		n.color = colorAmber
	} else {
		n.title = "Você Cancelou"
		n.color = colorRed
	}
	return n
}

func narrateRefunded(in narrationInput) narration {
	return narration{
		title:       "Reembolso Concluído",
		description: "O valor do pedido foi estornado ao cliente.",
		color:       colorGreen,
	}
}

func narratePartialRefundInProcess(in narrationInput) narration {
	n := narration{
		description: "A análise foi concluída com um reembolso parcial ao cliente. O saldo restante será liberado para você.",
		color:       colorAmber,
	}
	if in.isCurrent {
		n.title = "Reembolso Parcial Aprovado"
	} else {
		n.title = "Disputa Resolvida"
	}
	return n
}

func narratePartialRefund(in narrationInput) narration {
	return narration{
		title:       "Finalizado Parcialmente",
		description: "O processo foi concluído. O saldo remanescente foi liberado na sua carteira.",
		color:       colorGreen,
	}
}
