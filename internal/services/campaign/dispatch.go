package campaign

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"reactivation/internal/domain"
)

// Approval releases one batch item, optionally with an edited message.
type Approval struct {
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// ApproveAll approves every item of b with its generated message.
func ApproveAll(b domain.Batch) []Approval {
	out := make([]Approval, 0, len(b.Items))
	for _, it := range b.Items {
		out = append(out, Approval{Phone: it.Customer.Phone})
	}
	return out
}

// Approve dispatches the approved OPENING messages of a pending batch and
// starts a follow-up sequence for every delivered one. Each batch is
// dispatched at most once.
func (o *Orchestrator) Approve(ctx context.Context, batchID string, approvals []Approval) (domain.DispatchResult, error) {
	if !o.run.TryLock() {
		return domain.DispatchResult{}, domain.ErrRunInProgress
	}
	defer o.run.Unlock()
	return o.approve(ctx, batchID, approvals)
}

func (o *Orchestrator) approve(ctx context.Context, batchID string, approvals []Approval) (domain.DispatchResult, error) {
	batch, err := o.Batches.GetBatch(ctx, batchID)
	if err != nil {
		return domain.DispatchResult{}, fmt.Errorf("load batch %s: %w", batchID, err)
	}
	ok, err := o.Batches.TransitionBatch(ctx, batchID, domain.BatchPendingApproval, domain.BatchApproved, o.Clock.Now())
	if err != nil {
		return domain.DispatchResult{}, fmt.Errorf("approve batch %s: %w", batchID, err)
	}
	if !ok {
		return domain.DispatchResult{}, fmt.Errorf("%w: %s is %s", domain.ErrBatchNotPending, batchID, batch.Status)
	}

	items := make(map[string]domain.BatchItem, len(batch.Items))
	for _, it := range batch.Items {
		items[it.Customer.Phone] = it
	}

	result := domain.DispatchResult{BatchID: batchID}
	attempted := false
	for _, a := range approvals {
		phone := domain.NormalizePhone(a.Phone)
		item, found := items[phone]
		if !found {
			o.report(&result, domain.SendResult{Phone: phone, Stage: domain.StageOpening, Status: domain.SendFailed,
				Error: "not part of batch", At: o.Clock.Now()})
			continue
		}
		delete(items, phone)
		if a.Message != "" {
			item.Message = a.Message
		}
		if ctx.Err() != nil {
			o.report(&result, o.skipped(ctx, batchID, item, ctx.Err()))
			continue
		}
		if attempted {
			if err := o.pause(ctx); err != nil {
				o.report(&result, o.skipped(ctx, batchID, item, err))
				continue
			}
		}
		attempted = true
		o.report(&result, o.dispatchOpening(ctx, batchID, item))
	}

	// The batch is marked dispatched even after a cancel so it cannot be
	// approved twice; unsent items are reported as failures.
	if _, err := o.Batches.TransitionBatch(context.WithoutCancel(ctx), batchID, domain.BatchApproved, domain.BatchDispatched, o.Clock.Now()); err != nil {
		o.Log.Error("mark batch dispatched", zap.String("batch_id", batchID), zap.Error(err))
	}
	o.Log.Info("batch dispatched",
		zap.String("batch_id", batchID),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed))
	return result, ctx.Err()
}

func (o *Orchestrator) dispatchOpening(ctx context.Context, batchID string, item domain.BatchItem) domain.SendResult {
	now := o.Clock.Now()
	res := domain.SendResult{Phone: item.Customer.Phone, Name: item.Customer.Name, Stage: domain.StageOpening, At: now}
	rec := domain.OutreachRecord{
		Phone:     item.Customer.Phone,
		Name:      item.Customer.Name,
		At:        now,
		Score:     item.Score.Total,
		Template:  item.Template,
		Offer:     item.Offer.Key,
		Stage:     domain.StageOpening,
		VariantID: item.VariantID,
		BatchID:   batchID,
		Outcome:   domain.OutcomeSent,
	}

	if err := o.Sender.Send(ctx, item.Customer.Phone, item.Message); err != nil {
		o.Log.Warn("opening send failed", zap.String("phone", item.Customer.Phone), zap.Error(err))
		res.Status, res.Error = domain.SendFailed, err.Error()
		rec.Outcome, rec.Error = domain.OutcomeFailed, err.Error()
		o.record(ctx, rec)
		return res
	}
	res.Status = domain.SendOK
	o.record(ctx, rec)

	if item.VariantID != "" && o.Experiments != nil {
		if err := o.Experiments.RecordSend(ctx, item.VariantID); err != nil {
			o.Log.Warn("variant send not counted", zap.String("variant_id", item.VariantID), zap.Error(err))
		}
	}

	seq := o.newSequence(batchID, item, now)
	if err := o.Sequences.StartSequence(ctx, seq); err != nil {
		if errors.Is(err, domain.ErrSequenceActive) {
			o.Log.Info("follow-up already running", zap.String("phone", seq.Phone))
		} else {
			o.Log.Error("start follow-up", zap.String("phone", seq.Phone), zap.Error(err))
		}
	}
	return res
}

// skipped records an approved item that was never sent because the run was
// cancelled.
func (o *Orchestrator) skipped(ctx context.Context, batchID string, item domain.BatchItem, cause error) domain.SendResult {
	now := o.Clock.Now()
	o.record(context.WithoutCancel(ctx), domain.OutreachRecord{
		Phone:     item.Customer.Phone,
		Name:      item.Customer.Name,
		At:        now,
		Score:     item.Score.Total,
		Template:  item.Template,
		Offer:     item.Offer.Key,
		Stage:     domain.StageOpening,
		VariantID: item.VariantID,
		BatchID:   batchID,
		Outcome:   domain.OutcomeFailed,
		Error:     cause.Error(),
	})
	return domain.SendResult{Phone: item.Customer.Phone, Name: item.Customer.Name, Stage: domain.StageOpening,
		Status: domain.SendFailed, Error: cause.Error(), At: now}
}

func (o *Orchestrator) report(result *domain.DispatchResult, res domain.SendResult) {
	result.Add(res)
	if o.opts.OnSend != nil {
		o.opts.OnSend(res)
	}
}

func (o *Orchestrator) record(ctx context.Context, rec domain.OutreachRecord) {
	if _, err := o.Ledger.RecordAttempt(ctx, rec); err != nil {
		o.Log.Error("record outreach", zap.String("phone", rec.Phone), zap.Error(err))
	}
}
