package campaign

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"reactivation/internal/domain"
	"reactivation/internal/services/messages"
)

// ReasonDeliveryFailed cancels a sequence whose stage kept failing to send.
const ReasonDeliveryFailed = "delivery failed"

// RunDueStages fires every follow-up stage that is due. Each sequence is
// re-read right before it fires and written back with a compare-and-set on
// its stage, so a reply that cancels it mid-pass wins.
func (o *Orchestrator) RunDueStages(ctx context.Context) (domain.DispatchResult, error) {
	if !o.run.TryLock() {
		return domain.DispatchResult{}, domain.ErrRunInProgress
	}
	defer o.run.Unlock()

	due, err := o.Sequences.DueSequences(ctx, o.Clock.Now(), o.opts.FollowupBatch)
	if err != nil {
		return domain.DispatchResult{}, fmt.Errorf("list due sequences: %w", err)
	}

	var result domain.DispatchResult
	attempted := false
	for _, s := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		seq, found, err := o.Sequences.GetSequence(ctx, s.Phone)
		if err != nil {
			o.Log.Error("reload sequence", zap.String("phone", s.Phone), zap.Error(err))
			continue
		}
		if !found || !seq.Due(o.Clock.Now()) {
			continue
		}
		if attempted {
			if err := o.pause(ctx); err != nil {
				return result, err
			}
			// The pause may have let a cancel through.
			if seq, found, err = o.Sequences.GetSequence(ctx, s.Phone); err != nil || !found || !seq.Due(o.Clock.Now()) {
				continue
			}
		}
		attempted = true
		o.report(&result, o.fireStage(ctx, seq))
	}
	if result.Total > 0 {
		o.Log.Info("follow-up stages fired", zap.Int("sent", result.Sent), zap.Int("failed", result.Failed))
	}
	return result, nil
}

// newSequence is the follow-up state an item enters once its opening is
// sent at now.
func (o *Orchestrator) newSequence(batchID string, item domain.BatchItem, now time.Time) domain.FollowupSequence {
	profile := o.Messages.ProfileTriggers(item.Customer, item.Score.DaysInactive)
	return domain.FollowupSequence{
		Phone:     item.Customer.Phone,
		Name:      item.Customer.Name,
		BatchID:   batchID,
		Template:  item.Template,
		Offer:     item.Offer.Key,
		VariantID: item.VariantID,
		Score:     item.Score.Total,
		Plan:      item.Customer.Plan,
		Triggers:  profile.Triggers,
		Stage:     domain.StageOpening,
		NextStage: domain.StageReinforcement,
		NextAt:    now.Add(o.opts.ReinforcementAfter),
		StartedAt: now,
		UpdatedAt: now,
	}
}

// PreviewSequence renders every stage a batch item would receive if the
// batch were approved now, with the trigger mix picked for the member.
func (o *Orchestrator) PreviewSequence(ctx context.Context, batchID, phone string) (domain.SequencePreview, error) {
	batch, err := o.Batches.GetBatch(ctx, batchID)
	if err != nil {
		return domain.SequencePreview{}, err
	}
	phone = domain.NormalizePhone(phone)
	for _, item := range batch.Items {
		if domain.NormalizePhone(item.Customer.Phone) != phone {
			continue
		}
		now := o.Clock.Now()
		seq := o.newSequence(batch.ID, item, now)
		preview := domain.SequencePreview{
			Phone:   phone,
			Name:    item.Customer.Name,
			Profile: o.Messages.ProfileTriggers(item.Customer, item.Score.DaysInactive),
			Stages: []domain.StagePreview{{
				Stage:  domain.StageOpening,
				SendAt: now,
				Text:   item.Message,
			}},
		}
		at := now.Add(o.opts.ReinforcementAfter)
		for stage, ok := domain.StageReinforcement, true; ok; stage, ok = stage.Next() {
			triggers := o.Messages.StageTriggers(seq, stage)
			preview.Stages = append(preview.Stages, domain.StagePreview{
				Stage:    stage,
				SendAt:   at,
				Text:     o.Messages.StageMessage(seq, stage),
				Triggers: triggers,
				Expected: messages.Estimate(triggers),
			})
			at = at.Add(o.opts.UrgencyAfter)
		}
		return preview, nil
	}
	return domain.SequencePreview{}, fmt.Errorf("phone %s in batch %s: %w", phone, batchID, domain.ErrNotFound)
}

func (o *Orchestrator) fireStage(ctx context.Context, seq domain.FollowupSequence) domain.SendResult {
	stage := seq.NextStage
	now := o.Clock.Now()
	res := domain.SendResult{Phone: seq.Phone, Name: seq.Name, Stage: stage, At: now}
	rec := domain.OutreachRecord{
		Phone:     seq.Phone,
		Name:      seq.Name,
		At:        now,
		Score:     seq.Score,
		Template:  seq.Template,
		Offer:     seq.Offer,
		Stage:     stage,
		VariantID: seq.VariantID,
		BatchID:   seq.BatchID,
		Outcome:   domain.OutcomeSent,
	}

	next := seq
	next.UpdatedAt = now
	sendErr := o.Sender.Send(ctx, seq.Phone, o.Messages.StageMessage(seq, stage))
	if sendErr != nil {
		res.Status, res.Error = domain.SendFailed, sendErr.Error()
		rec.Outcome, rec.Error = domain.OutcomeFailed, sendErr.Error()
		next.Attempts++
		if next.Attempts >= o.opts.MaxStageAttempts {
			next.Stage, next.NextStage, next.NextAt = domain.StageCancelled, "", time.Time{}
			next.CancelReason = ReasonDeliveryFailed
		} else {
			next.NextAt = now.Add(o.opts.StageRetryDelay)
		}
		o.Log.Warn("follow-up send failed",
			zap.String("phone", seq.Phone),
			zap.String("stage", string(stage)),
			zap.Int("attempts", next.Attempts),
			zap.Error(sendErr))
	} else {
		res.Status = domain.SendOK
		next.Stage, next.Attempts = stage, 0
		if after, ok := stage.Next(); ok {
			next.NextStage, next.NextAt = after, now.Add(o.opts.UrgencyAfter)
		} else {
			next.Stage, next.NextStage, next.NextAt = domain.StageDone, "", time.Time{}
		}
	}
	o.record(ctx, rec)

	ok, err := o.Sequences.TransitionSequence(ctx, seq.Stage, next)
	switch {
	case err != nil:
		o.Log.Error("advance sequence", zap.String("phone", seq.Phone), zap.Error(err))
	case !ok:
		o.Log.Info("sequence changed while its stage fired", zap.String("phone", seq.Phone))
	}
	return res
}

// CancelSequence stops the follow-up for phone. A phone without a live
// sequence is not an error.
func (o *Orchestrator) CancelSequence(ctx context.Context, phone, reason string) error {
	phone = domain.NormalizePhone(phone)
	cancelled, err := o.Sequences.CancelSequence(ctx, phone, reason, o.Clock.Now())
	if err != nil {
		return fmt.Errorf("cancel sequence %s: %w", phone, err)
	}
	if cancelled {
		o.Log.Info("follow-up cancelled", zap.String("phone", phone), zap.String("reason", reason))
	}
	return nil
}

// ListSequences lists follow-ups, optionally filtered by stage.
func (o *Orchestrator) ListSequences(ctx context.Context, stage domain.Stage) ([]domain.FollowupSequence, error) {
	return o.Sequences.ListSequences(ctx, stage)
}
